package repositories

import (
	"gorm.io/gorm"

	"github.com/Gopher0727/DailyQ/internal/models"
)

// AnswerRepository 答案仓储
type AnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository 创建答案仓储实例
func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// GetByUserAndDaily 获取用户对某个每日问题的答案
func (r *AnswerRepository) GetByUserAndDaily(dailyQuestionID, userID uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.Where("daily_question_id = ? AND user_id = ?", dailyQuestionID, userID).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// Create 插入答案，(user_id, daily_question_id) 唯一索引冲突时返回 gorm.ErrDuplicatedKey
func (r *AnswerRepository) Create(answer *models.Answer) error {
	return r.db.Create(answer).Error
}

// UpdateContent 原地覆盖答案内容
func (r *AnswerRepository) UpdateContent(dailyQuestionID, userID uint, content string) error {
	return r.db.Model(&models.Answer{}).
		Where("daily_question_id = ? AND user_id = ?", dailyQuestionID, userID).
		Update("content", content).Error
}

// ListForUsers 获取某个每日问题下指定用户们的答案，排除请求者本人
func (r *AnswerRepository) ListForUsers(dailyQuestionID uint, userIDs []uint, excludeUserID uint) ([]models.Answer, error) {
	var answers []models.Answer
	if len(userIDs) == 0 {
		return answers, nil
	}
	err := r.db.Preload("User").
		Where("daily_question_id = ? AND user_id IN ? AND user_id <> ?", dailyQuestionID, userIDs, excludeUserID).
		Order("created_at").
		Find(&answers).Error
	return answers, err
}

// ListByUser 获取用户自己的答案时间线，按创建时间倒序，预加载问题链
func (r *AnswerRepository) ListByUser(userID uint, limit int) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.Preload("DailyQuestion.Question").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&answers).Error
	return answers, err
}
