package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Gopher0727/DailyQ/internal/models"
	"github.com/Gopher0727/DailyQ/internal/utils"
)

// answerStore 答案服务需要的存取能力
type answerStore interface {
	GetByUserAndDaily(dailyQuestionID, userID uint) (*models.Answer, error)
	Create(answer *models.Answer) error
	UpdateContent(dailyQuestionID, userID uint, content string) error
	ListForUsers(dailyQuestionID uint, userIDs []uint, excludeUserID uint) ([]models.Answer, error)
	ListByUser(userID uint, limit int) ([]models.Answer, error)
}

// memberResolver 解析组成员和组内昵称
type memberResolver interface {
	MemberUserIDs(groupIDs []uint) ([]uint, error)
	MemberNicknames(groupIDs []uint) (map[uint]string, error)
}

// TimelineLimit 时间线最多返回的条数
const TimelineLimit = 50

// AnswerService 答案服务
type AnswerService struct {
	answerRepo answerStore
	memberRepo memberResolver
}

// NewAnswerService 创建答案服务实例
func NewAnswerService(answerRepo answerStore, memberRepo memberResolver) *AnswerService {
	return &AnswerService{
		answerRepo: answerRepo,
		memberRepo: memberRepo,
	}
}

// SubmitAnswerRequest 提交/编辑答案请求
type SubmitAnswerRequest struct {
	DailyQuestionID uint   `json:"daily_question_id" binding:"required"`
	Content         string `json:"content" binding:"required"`
}

// AnswerDTO 答案数据传输对象
type AnswerDTO struct {
	ID              uint   `json:"id"`
	DailyQuestionID uint   `json:"daily_question_id"`
	Content         string `json:"content"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// GroupAnswerDTO 组员答案数据传输对象，署名来自组内昵称或用户 Profile
type GroupAnswerDTO struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	AvatarURL string `json:"avatar_url"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// TimelineEntryDTO 时间线条目：自己的答案拼上当天的问题
type TimelineEntryDTO struct {
	ID           uint   `json:"id"`
	Content      string `json:"content"`
	QuestionDate string `json:"question_date"`
	Question     string `json:"question"`
	Category     string `json:"category"`
	CreatedAt    string `json:"created_at"`
}

// GetMyAnswer 获取用户对某个每日问题的答案，没有时返回 nil
func (s *AnswerService) GetMyAnswer(dailyQuestionID, userID uint) (*AnswerDTO, error) {
	answer, err := s.answerRepo.GetByUserAndDaily(dailyQuestionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toAnswerDTO(answer), nil
}

// SubmitAnswer 提交或编辑答案。
// 已有答案时原地覆盖；首次提交插入新行；并发首次提交撞上唯一索引时
// 视为对方已插入，退化为覆盖更新。重复调用永远只留一行。
func (s *AnswerService) SubmitAnswer(userID uint, req *SubmitAnswerRequest) (*AnswerDTO, error) {
	content := strings.TrimSpace(req.Content)
	if !utils.ValidateAnswerContent(content) {
		return nil, ErrInvalidContent
	}

	existing, err := s.answerRepo.GetByUserAndDaily(req.DailyQuestionID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := s.answerRepo.UpdateContent(req.DailyQuestionID, userID, content); err != nil {
			return nil, err
		}
		existing.Content = content
		return toAnswerDTO(existing), nil
	}

	answer := &models.Answer{
		UserID:          userID,
		DailyQuestionID: req.DailyQuestionID,
		Content:         content,
	}
	if err := s.answerRepo.Create(answer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发提交已经插入了，改为覆盖
			if err := s.answerRepo.UpdateContent(req.DailyQuestionID, userID, content); err != nil {
				return nil, err
			}
			updated, getErr := s.answerRepo.GetByUserAndDaily(req.DailyQuestionID, userID)
			if getErr != nil {
				return nil, getErr
			}
			return toAnswerDTO(updated), nil
		}
		return nil, err
	}
	return toAnswerDTO(answer), nil
}

// ListGroupAnswers 获取组员对某个每日问题的答案，排除请求者本人。
// 署名优先用组内昵称，退回用户 Profile 昵称
func (s *AnswerService) ListGroupAnswers(dailyQuestionID, requestingUserID uint, groupIDs []uint) ([]GroupAnswerDTO, error) {
	userIDs, err := s.memberRepo.MemberUserIDs(groupIDs)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.ListForUsers(dailyQuestionID, userIDs, requestingUserID)
	if err != nil {
		return nil, err
	}

	nicknames, err := s.memberRepo.MemberNicknames(groupIDs)
	if err != nil {
		// 昵称查询失败只影响署名，不影响答案本体
		nicknames = map[uint]string{}
	}

	dtos := make([]GroupAnswerDTO, 0, len(answers))
	for _, a := range answers {
		dto := GroupAnswerDTO{
			ID:        a.ID,
			UserID:    a.UserID,
			Content:   a.Content,
			CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if name, ok := nicknames[a.UserID]; ok {
			dto.UserName = name
		} else if a.User != nil {
			dto.UserName = a.User.Nickname
		}
		if a.User != nil {
			dto.AvatarURL = a.User.AvatarURL
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// ListMyTimeline 获取用户自己的答案时间线，最新在前；
// 问题链断裂（孤儿引用）的行静默丢弃
func (s *AnswerService) ListMyTimeline(userID uint) ([]TimelineEntryDTO, error) {
	answers, err := s.answerRepo.ListByUser(userID, TimelineLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntryDTO, 0, len(answers))
	for _, a := range answers {
		if a.DailyQuestion == nil || a.DailyQuestion.Question == nil {
			continue
		}
		entries = append(entries, TimelineEntryDTO{
			ID:           a.ID,
			Content:      a.Content,
			QuestionDate: a.DailyQuestion.QuestionDate,
			Question:     a.DailyQuestion.Question.Content,
			Category:     a.DailyQuestion.Question.Category,
			CreatedAt:    a.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return entries, nil
}

func toAnswerDTO(answer *models.Answer) *AnswerDTO {
	return &AnswerDTO{
		ID:              answer.ID,
		DailyQuestionID: answer.DailyQuestionID,
		Content:         answer.Content,
		CreatedAt:       answer.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       answer.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
