package models

import "time"

// Answer 用户对某日问题的回答
// (user_id, daily_question_id) 唯一索引保证一人一天一条，编辑为原地覆盖
type Answer struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_user_daily_question" json:"user_id"`
	DailyQuestionID uint   `gorm:"not null;uniqueIndex:idx_user_daily_question" json:"daily_question_id"`
	Content         string `gorm:"size:100;not null" json:"content"`

	User          *User          `gorm:"foreignKey:UserID" json:"-"`
	DailyQuestion *DailyQuestion `gorm:"foreignKey:DailyQuestionID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Answer) TableName() string {
	return "journal_answers"
}
