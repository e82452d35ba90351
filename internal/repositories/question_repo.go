package repositories

import (
	"gorm.io/gorm"

	"github.com/Gopher0727/DailyQ/internal/models"
)

// QuestionRepository 问题目录与每日问题仓储
type QuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository 创建问题仓储实例
func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetDailyByDate 获取某日的每日问题（不带问题内容）
func (r *QuestionRepository) GetDailyByDate(date string) (*models.DailyQuestion, error) {
	var dq models.DailyQuestion
	if err := r.db.Where("question_date = ?", date).First(&dq).Error; err != nil {
		return nil, err
	}
	return &dq, nil
}

// GetDailyWithQuestion 获取某日的每日问题并预加载问题内容
func (r *QuestionRepository) GetDailyWithQuestion(date string) (*models.DailyQuestion, error) {
	var dq models.DailyQuestion
	if err := r.db.Preload("Question").Where("question_date = ?", date).First(&dq).Error; err != nil {
		return nil, err
	}
	return &dq, nil
}

// RecentQuestionIDs 返回 fromDate（含）以来每日问题用过的 Question ID
func (r *QuestionRepository) RecentQuestionIDs(fromDate string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.DailyQuestion{}).
		Where("question_date >= ?", fromDate).
		Pluck("question_id", &ids).Error
	return ids, err
}

// ListQuestionIDsExcluding 返回目录中不在 exclude 里的全部 Question ID
func (r *QuestionRepository) ListQuestionIDsExcluding(exclude []uint) ([]uint, error) {
	var ids []uint
	query := r.db.Model(&models.Question{})
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}
	err := query.Pluck("id", &ids).Error
	return ids, err
}

// FirstQuestionID 返回目录中的第一条 Question ID（目录耗尽时的兜底）
func (r *QuestionRepository) FirstQuestionID() (uint, error) {
	var q models.Question
	if err := r.db.Order("id").First(&q).Error; err != nil {
		return 0, err
	}
	return q.ID, nil
}

// CreateDaily 插入每日问题，question_date 唯一索引冲突时返回 gorm.ErrDuplicatedKey
func (r *QuestionRepository) CreateDaily(dq *models.DailyQuestion) error {
	return r.db.Create(dq).Error
}
