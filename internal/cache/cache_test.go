package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, zap.NewNop()), mr
}

func TestMemberCount(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetMemberCount(ctx, 1)
	assert.False(t, ok, "empty cache must miss")

	c.SetMemberCount(ctx, 1, 4)
	count, ok := c.GetMemberCount(ctx, 1)
	assert.True(t, ok)
	assert.EqualValues(t, 4, count)

	c.InvalidateMemberCount(ctx, 1)
	_, ok = c.GetMemberCount(ctx, 1)
	assert.False(t, ok, "invalidated entry must miss")

	// entries expire on their own
	c.SetMemberCount(ctx, 2, 7)
	mr.FastForward(6 * time.Minute)
	_, ok = c.GetMemberCount(ctx, 2)
	assert.False(t, ok)
}

func TestDailyQuestion(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	type payload struct {
		QuestionDate string `json:"question_date"`
		Content      string `json:"content"`
	}

	var got payload
	assert.False(t, c.GetDailyQuestion(ctx, "2026-09-01", &got))

	c.SetDailyQuestion(ctx, "2026-09-01", payload{QuestionDate: "2026-09-01", Content: "오늘 가장 감사했던 일은?"})

	require.True(t, c.GetDailyQuestion(ctx, "2026-09-01", &got))
	assert.Equal(t, "2026-09-01", got.QuestionDate)
	assert.Equal(t, "오늘 가장 감사했던 일은?", got.Content)

	// other dates stay independent
	assert.False(t, c.GetDailyQuestion(ctx, "2026-09-02", &got))
}

func TestFailOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	c := New(client, zap.NewNop())

	ctx := context.Background()
	c.SetMemberCount(ctx, 1, 4)

	// a dead Redis degrades every read to a miss and every write to a no-op
	mr.Close()

	_, ok := c.GetMemberCount(ctx, 1)
	assert.False(t, ok)
	c.SetMemberCount(ctx, 1, 5)
	c.InvalidateMemberCount(ctx, 1)

	var got struct{}
	assert.False(t, c.GetDailyQuestion(ctx, "2026-09-01", &got))
	c.SetDailyQuestion(ctx, "2026-09-01", struct{}{})
}
