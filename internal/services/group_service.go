package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Gopher0727/DailyQ/internal/models"
	"github.com/Gopher0727/DailyQ/internal/utils"
	pkgutils "github.com/Gopher0727/DailyQ/pkg/utils"
)

// inviteCodeRetries 邀请码撞库时的重新生成次数上限
const inviteCodeRetries = 5

// groupStore 分享组服务需要的存取能力
type groupStore interface {
	CreateWithOwner(group *models.Group) error
	GetByID(id uint) (*models.Group, error)
	GetByInviteCode(code string) (*models.Group, error)
	UpdateName(id uint, name string) error
	DeleteWithMembers(id uint) error
	GetUserGroups(userID uint) ([]models.Group, error)
	AddMember(member *models.GroupMember) error
	GetMember(groupID, userID uint) (*models.GroupMember, error)
	RemoveMember(groupID, userID uint) error
	CountMembers(groupID uint) (int64, error)
	ListMembers(groupID uint) ([]models.GroupMember, error)
}

// memberCountCache 成员数缓存，所有错误降级为未命中
type memberCountCache interface {
	GetMemberCount(ctx context.Context, groupID uint) (int64, bool)
	SetMemberCount(ctx context.Context, groupID uint, count int64)
	InvalidateMemberCount(ctx context.Context, groupID uint)
}

// GroupService 分享组服务
type GroupService struct {
	groupRepo groupStore
	cache     memberCountCache // 可为 nil，nil 时全部走数据库
}

// NewGroupService 创建分享组服务实例
func NewGroupService(groupRepo groupStore, cache memberCountCache) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		cache:     cache,
	}
}

// CreateGroupRequest 创建组请求
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// JoinGroupRequest 加入组请求
type JoinGroupRequest struct {
	Code string `json:"code" binding:"required"`
}

// RenameGroupRequest 改名请求
type RenameGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// GroupDTO 分享组数据传输对象
type GroupDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	InviteCode  string `json:"invite_code"`
	OwnerID     uint   `json:"owner_id"`
	IsOwner     bool   `json:"is_owner"`
	MemberCount int64  `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}

// GroupMemberDTO 组成员数据传输对象
type GroupMemberDTO struct {
	UserID    uint   `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	JoinedAt  string `json:"joined_at"`
}

// CreateGroup 创建分享组：生成 6 位邀请码，组行和组主成员行在一个事务里落库
func (s *GroupService) CreateGroup(ownerID uint, req *CreateGroupRequest) (*GroupDTO, error) {
	name := strings.TrimSpace(req.Name)
	if !utils.ValidateGroupName(name) {
		return nil, ErrInvalidGroupName
	}

	var group *models.Group
	for attempt := 0; attempt < inviteCodeRetries; attempt++ {
		group = &models.Group{
			Name:       name,
			InviteCode: pkgutils.GenerateInviteCode(),
			OwnerID:    ownerID,
		}

		err := s.groupRepo.CreateWithOwner(group)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 邀请码撞了已有组，换一个码重试
			group = nil
			continue
		}
		return nil, err
	}
	if group == nil {
		return nil, errors.New("failed to generate a unique invite code")
	}

	return s.toGroupDTO(group, ownerID), nil
}

// JoinGroup 通过邀请码加入组
func (s *GroupService) JoinGroup(userID uint, req *JoinGroupRequest) (*GroupDTO, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !pkgutils.ValidateInviteCode(code) {
		return nil, ErrInvalidInviteCode
	}

	group, err := s.groupRepo.GetByInviteCode(code)
	if err != nil {
		return nil, ErrInvalidInviteCode
	}

	// 先查重，留给并发竞争的窗口由唯一索引兜底
	if _, err := s.groupRepo.GetMember(group.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	}

	member := &models.GroupMember{
		GroupID:  group.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepo.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	s.invalidateCount(group.ID)
	return s.toGroupDTO(group, userID), nil
}

// LeaveGroup 退出组，成员行不存在时静默成功
func (s *GroupService) LeaveGroup(userID, groupID uint) error {
	if err := s.groupRepo.RemoveMember(groupID, userID); err != nil {
		return err
	}
	s.invalidateCount(groupID)
	return nil
}

// RenameGroup 改组名，仅组主可操作（按认证身份在服务端校验）
func (s *GroupService) RenameGroup(userID, groupID uint, req *RenameGroupRequest) error {
	name := strings.TrimSpace(req.Name)
	if !utils.ValidateGroupName(name) {
		return ErrInvalidGroupName
	}

	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return ErrGroupNotFound
	}
	if group.OwnerID != userID {
		return ErrNotGroupOwner
	}

	return s.groupRepo.UpdateName(groupID, name)
}

// DeleteGroup 删组，仅组主可操作；成员行和组行在一个事务里删除
func (s *GroupService) DeleteGroup(userID, groupID uint) error {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return ErrGroupNotFound
	}
	if group.OwnerID != userID {
		return ErrNotGroupOwner
	}

	if err := s.groupRepo.DeleteWithMembers(groupID); err != nil {
		return err
	}
	s.invalidateCount(groupID)
	return nil
}

// ListMyGroups 获取用户加入的全部组（带成员数和组主标记）
func (s *GroupService) ListMyGroups(userID uint) ([]GroupDTO, error) {
	groups, err := s.groupRepo.GetUserGroups(userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]GroupDTO, 0, len(groups))
	for i := range groups {
		dtos = append(dtos, *s.toGroupDTO(&groups[i], userID))
	}
	return dtos, nil
}

// CountMembers 统计组成员数，缓存优先；统计失败降级为 0，不阻塞页面
func (s *GroupService) CountMembers(groupID uint) int64 {
	ctx := context.Background()
	if s.cache != nil {
		if count, ok := s.cache.GetMemberCount(ctx, groupID); ok {
			return count
		}
	}

	count, err := s.groupRepo.CountMembers(groupID)
	if err != nil {
		log.Printf("CountMembers: count failed for group %d: %v", groupID, err)
		return 0
	}

	if s.cache != nil {
		s.cache.SetMemberCount(ctx, groupID, count)
	}
	return count
}

// ListMembers 获取组成员列表，组内昵称为空时回退用户 Profile
func (s *GroupService) ListMembers(groupID uint) ([]GroupMemberDTO, error) {
	members, err := s.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, err
	}

	dtos := make([]GroupMemberDTO, 0, len(members))
	for _, m := range members {
		dto := GroupMemberDTO{
			UserID:    m.UserID,
			Nickname:  m.Nickname,
			AvatarURL: m.AvatarURL,
			JoinedAt:  m.JoinedAt.Format("2006-01-02 15:04:05"),
		}
		if dto.Nickname == "" && m.User != nil {
			dto.Nickname = m.User.Nickname
		}
		if dto.AvatarURL == "" && m.User != nil {
			dto.AvatarURL = m.User.AvatarURL
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// MyGroupIDs 返回用户加入的组 ID 列表
func (s *GroupService) MyGroupIDs(userID uint) ([]uint, error) {
	groups, err := s.groupRepo.GetUserGroups(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// IsMember 判断用户是否在组里
func (s *GroupService) IsMember(groupID, userID uint) bool {
	_, err := s.groupRepo.GetMember(groupID, userID)
	return err == nil
}

func (s *GroupService) invalidateCount(groupID uint) {
	if s.cache != nil {
		s.cache.InvalidateMemberCount(context.Background(), groupID)
	}
}

func (s *GroupService) toGroupDTO(group *models.Group, viewerID uint) *GroupDTO {
	return &GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		InviteCode:  group.InviteCode,
		OwnerID:     group.OwnerID,
		IsOwner:     group.OwnerID == viewerID,
		MemberCount: s.CountMembers(group.ID),
		CreatedAt:   group.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
