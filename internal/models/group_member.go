package models

import "time"

// GroupMember 组成员模型
// (group_id, user_id) 唯一索引保证同一用户最多加入一次
// Nickname/AvatarURL 为组内展示名，空时回退到用户 Profile
type GroupMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatar_url"`
	JoinedAt  time.Time `json:"joined_at"`

	Group *Group `gorm:"foreignKey:GroupID" json:"-"`
	User  *User  `gorm:"foreignKey:UserID" json:"-"`
}

func (GroupMember) TableName() string {
	return "journal_group_members"
}
