package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/Gopher0727/DailyQ/internal/models"
)

// GroupRepository 分享组仓储
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建分享组仓储实例
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateWithOwner 在同一事务里创建组和组主成员行，部分失败整体回滚
func (r *GroupRepository) CreateWithOwner(group *models.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   group.OwnerID,
			JoinedAt: time.Now(),
		}
		return tx.Create(member).Error
	})
}

// GetByID 根据ID获取组
func (r *GroupRepository) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByInviteCode 根据邀请码获取组
func (r *GroupRepository) GetByInviteCode(code string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("invite_code = ?", code).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateName 更新组名
func (r *GroupRepository) UpdateName(id uint, name string) error {
	return r.db.Model(&models.Group{}).Where("id = ?", id).Update("name", name).Error
}

// DeleteWithMembers 在同一事务里删除全部成员行和组本身
func (r *GroupRepository) DeleteWithMembers(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}

// GetUserGroups 获取用户加入的全部组
func (r *GroupRepository) GetUserGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Joins("JOIN journal_group_members ON journal_groups.id = journal_group_members.group_id").
		Where("journal_group_members.user_id = ?", userID).
		Order("journal_group_members.joined_at").
		Find(&groups).Error
	return groups, err
}

// AddMember 添加成员，(group_id, user_id) 唯一索引冲突时返回 gorm.ErrDuplicatedKey
func (r *GroupRepository) AddMember(member *models.GroupMember) error {
	return r.db.Create(member).Error
}

// GetMember 获取成员行
func (r *GroupRepository) GetMember(groupID, userID uint) (*models.GroupMember, error) {
	var member models.GroupMember
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember 删除成员行，不存在时不报错
func (r *GroupRepository) RemoveMember(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{}).Error
}

// CountMembers 统计组内成员数
func (r *GroupRepository) CountMembers(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// ListMembers 获取组内成员（预加载用户）
func (r *GroupRepository) ListMembers(groupID uint) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := r.db.Where("group_id = ?", groupID).Preload("User").Order("joined_at").Find(&members).Error
	return members, err
}

// MemberUserIDs 返回属于任一给定组的去重用户 ID
func (r *GroupRepository) MemberUserIDs(groupIDs []uint) ([]uint, error) {
	var ids []uint
	if len(groupIDs) == 0 {
		return ids, nil
	}
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id IN ?", groupIDs).
		Distinct().
		Pluck("user_id", &ids).Error
	return ids, err
}

// MemberNicknames 返回给定组里各用户的组内昵称（跳过空昵称）
func (r *GroupRepository) MemberNicknames(groupIDs []uint) (map[uint]string, error) {
	nicknames := make(map[uint]string)
	if len(groupIDs) == 0 {
		return nicknames, nil
	}
	var members []models.GroupMember
	if err := r.db.Where("group_id IN ?", groupIDs).Find(&members).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.Nickname != "" {
			if _, ok := nicknames[m.UserID]; !ok {
				nicknames[m.UserID] = m.Nickname
			}
		}
	}
	return nicknames, nil
}
