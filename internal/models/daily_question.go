package models

import "time"

// DailyQuestion 将一条 Question 绑定到一个日历日（KST, YYYY-MM-DD）
// question_date 唯一索引保证每天只有一条，并发插入由约束裁决
type DailyQuestion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	QuestionDate string `gorm:"size:10;uniqueIndex;not null" json:"question_date"`
	QuestionID   uint   `gorm:"not null;index" json:"question_id"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (DailyQuestion) TableName() string {
	return "journal_daily_questions"
}
