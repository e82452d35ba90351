package models

import (
	"time"

	"gorm.io/gorm"
)

// Group 分享组模型
type Group struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:50;not null" json:"name"`
	InviteCode string `gorm:"size:6;uniqueIndex;not null" json:"invite_code"`
	OwnerID    uint   `gorm:"not null" json:"owner_id"`

	Owner   *User         `gorm:"foreignKey:OwnerID" json:"-"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Group) TableName() string {
	return "journal_groups"
}
