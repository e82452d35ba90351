package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gopher0727/DailyQ/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with JSON format and stdout output", func(t *testing.T) {
		cfg := &config.LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		}

		logger, err := NewLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)

		logger.Info("test message")
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		cfg := &config.LoggingConfig{
			Level:  "debug",
			Format: "console",
			Output: "stdout",
		}

		logger, err := NewLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)

		logger.Debug("test debug message")
	})

	t.Run("creates logger with file output", func(t *testing.T) {
		tmpDir := t.TempDir()
		logFile := filepath.Join(tmpDir, "test.log")

		cfg := &config.LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: logFile,
		}

		logger, err := NewLogger(cfg)
		require.NoError(t, err)

		logger.Info("test file message")
		require.NoError(t, logger.Close())

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "test file message")
	})

	t.Run("defaults to info level for unknown level", func(t *testing.T) {
		cfg := &config.LoggingConfig{
			Level:  "chatty",
			Format: "json",
			Output: "stdout",
		}

		logger, err := NewLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestPresetLoggers(t *testing.T) {
	dev, err := NewDevelopmentLogger()
	require.NoError(t, err)
	require.NotNil(t, dev)

	prod, err := NewProductionLogger()
	require.NoError(t, err)
	require.NotNil(t, prod)
}

func TestWithTraceID(t *testing.T) {
	logger, err := NewDevelopmentLogger()
	require.NoError(t, err)

	traced := logger.WithTraceID("trace-123")
	require.NotNil(t, traced)
	assert.NotSame(t, logger, traced)

	traced.Info("message with trace id")
}

func TestWithContext(t *testing.T) {
	logger, err := NewDevelopmentLogger()
	require.NoError(t, err)

	t.Run("context with trace ID yields a traced logger", func(t *testing.T) {
		ctx := WithTraceID(context.Background(), "trace-456")
		traced := logger.WithContext(ctx)
		assert.NotSame(t, logger, traced)
	})

	t.Run("context without trace ID returns the original logger", func(t *testing.T) {
		same := logger.WithContext(context.Background())
		assert.Same(t, logger, same)
	})
}

func TestWithFields(t *testing.T) {
	logger, err := NewDevelopmentLogger()
	require.NoError(t, err)

	enriched := logger.WithFields(zap.String("component", "scheduler"), zap.Uint("group_id", 1))
	require.NotNil(t, enriched)
	enriched.Info("message with fields")
}

func TestContextLogging(t *testing.T) {
	logger, err := NewDevelopmentLogger()
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "trace-789")
	logger.InfoContext(ctx, "info with trace")
	logger.WarnContext(ctx, "warn with trace")
	logger.ErrorContext(ctx, "error with trace")
}
