package services

import (
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Gopher0727/DailyQ/internal/models"
	"github.com/Gopher0727/DailyQ/internal/timegate"
)

// RecentWindowDays 选题时避让的滑动窗口天数
const RecentWindowDays = 30

// dailyQuestionStore 选题流程需要的存取能力
type dailyQuestionStore interface {
	GetDailyByDate(date string) (*models.DailyQuestion, error)
	GetDailyWithQuestion(date string) (*models.DailyQuestion, error)
	RecentQuestionIDs(fromDate string) ([]uint, error)
	ListQuestionIDsExcluding(exclude []uint) ([]uint, error)
	FirstQuestionID() (uint, error)
	CreateDaily(dq *models.DailyQuestion) error
}

// QuestionService 每日问题服务
type QuestionService struct {
	questionRepo dailyQuestionStore
	logger       *zap.Logger
}

// NewQuestionService 创建每日问题服务实例
func NewQuestionService(questionRepo dailyQuestionStore, logger *zap.Logger) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// EnsureResult 选题结果：Created 区分真正新建和已存在
type EnsureResult struct {
	QuestionDate string `json:"question_date"`
	QuestionID   uint   `json:"question_id"`
	Created      bool   `json:"created"`
}

// QuestionDTO 问题数据传输对象
type QuestionDTO struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// DailyQuestionDTO 每日问题数据传输对象
type DailyQuestionDTO struct {
	ID            uint         `json:"id"`
	QuestionDate  string       `json:"question_date"`
	FormattedDate string       `json:"formatted_date"`
	Question      *QuestionDTO `json:"question"`
}

// EnsureDailyQuestion 保证 now 对应的 KST 日历日存在唯一一条每日问题。
// 幂等：已存在时不做任何写入。选题在最近 30 天未用过的问题里均匀随机，
// 目录耗尽时退回目录第一条。并发重复插入由唯一索引裁决，冲突视为已存在。
func (s *QuestionService) EnsureDailyQuestion(now time.Time) (*EnsureResult, error) {
	date := timegate.Today(now)

	if existing, err := s.questionRepo.GetDailyByDate(date); err == nil {
		return &EnsureResult{QuestionDate: date, QuestionID: existing.QuestionID, Created: false}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questionID, err := s.pickQuestion(now)
	if err != nil {
		return nil, err
	}

	dq := &models.DailyQuestion{
		QuestionDate: date,
		QuestionID:   questionID,
	}
	if err := s.questionRepo.CreateDaily(dq); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发的另一次运行抢先插入了，读回它的结果
			existing, getErr := s.questionRepo.GetDailyByDate(date)
			if getErr != nil {
				return nil, getErr
			}
			return &EnsureResult{QuestionDate: date, QuestionID: existing.QuestionID, Created: false}, nil
		}
		return nil, err
	}

	s.logger.Info("daily question selected",
		zap.String("question_date", date),
		zap.Uint("question_id", questionID),
	)
	return &EnsureResult{QuestionDate: date, QuestionID: questionID, Created: true}, nil
}

// pickQuestion 在 30 天避让窗口外均匀随机选题，窗口耗尽目录时兜底取第一条
func (s *QuestionService) pickQuestion(now time.Time) (uint, error) {
	recent, err := s.questionRepo.RecentQuestionIDs(timegate.DaysAgo(now, RecentWindowDays))
	if err != nil {
		return 0, err
	}

	candidates, err := s.questionRepo.ListQuestionIDsExcluding(recent)
	if err != nil {
		return 0, err
	}

	if len(candidates) > 0 {
		return candidates[rand.IntN(len(candidates))], nil
	}

	// 目录里所有问题最近都用过了，重复不可避免时允许重复
	firstID, err := s.questionRepo.FirstQuestionID()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoQuestions
		}
		return 0, err
	}
	return firstID, nil
}

// GetDailyQuestion 获取某日的每日问题（带问题内容）
func (s *QuestionService) GetDailyQuestion(date string) (*DailyQuestionDTO, error) {
	dq, err := s.questionRepo.GetDailyWithQuestion(date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoDailyQuestion
		}
		return nil, err
	}

	dto := &DailyQuestionDTO{
		ID:            dq.ID,
		QuestionDate:  dq.QuestionDate,
		FormattedDate: timegate.FormatDate(dq.QuestionDate),
	}
	if dq.Question != nil {
		dto.Question = &QuestionDTO{
			ID:       dq.Question.ID,
			Content:  dq.Question.Content,
			Category: dq.Question.Category,
		}
	}
	return dto, nil
}
