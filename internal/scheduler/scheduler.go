package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Gopher0727/DailyQ/internal/services"
	"github.com/Gopher0727/DailyQ/internal/timegate"
)

// Scheduler 进程内定时器，在 KST 午夜落下当天的问题。
// 和外部 HTTP cron 互为兜底，两边撞上由唯一索引裁决
type Scheduler struct {
	cron            *cron.Cron
	questionService *services.QuestionService
	logger          *zap.Logger
}

// New 创建调度器，spec 为 cron 表达式（如 "0 0 * * *"），按 KST 解释
func New(questionService *services.QuestionService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(timegate.KST)),
		questionService: questionService,
		logger:          logger,
	}
}

// Start 注册任务并启动调度。启动时先补一次当天的问题，
// 进程重启跨过午夜也不会漏掉当天
func (s *Scheduler) Start(spec string) error {
	s.runOnce()

	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", spec))
	return nil
}

// Stop 停止调度，等在途任务跑完
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runOnce() {
	now := time.Now()
	result, err := s.questionService.EnsureDailyQuestion(now)
	if err != nil {
		s.logger.Error("daily question selection failed",
			zap.String("date", timegate.Today(now)),
			zap.Error(err),
		)
		return
	}

	if result.Created {
		s.logger.Info("daily question created",
			zap.String("date", result.QuestionDate),
			zap.Uint("question_id", result.QuestionID),
		)
	} else {
		s.logger.Info("daily question already exists",
			zap.String("date", result.QuestionDate),
			zap.Uint("question_id", result.QuestionID),
		)
	}
}
