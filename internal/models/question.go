package models

// Question 问题目录，由种子数据维护，用户侧只读
type Question struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"not null" json:"content"`
	Category string `gorm:"size:50" json:"category"`
}

func (Question) TableName() string {
	return "journal_questions"
}
