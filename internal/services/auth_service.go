package services

import (
	"errors"

	"github.com/Gopher0727/DailyQ/internal/models"
	"github.com/Gopher0727/DailyQ/internal/utils"
	pkgutils "github.com/Gopher0727/DailyQ/pkg/utils"
)

// userStore 认证服务需要的用户存取能力
type userStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// AuthService 认证服务
// 站内账号体系，为会话边界签发 JWT；第三方 OAuth 跳转由外部协作方承担
type AuthService struct {
	userRepo userStore
}

// NewAuthService 创建认证服务实例
func NewAuthService(userRepo userStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户数据传输对象
type UserDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfileRequest 更新昵称/头像请求
type UpdateProfileRequest struct {
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// Register 注册用户
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	// 验证输入
	if !utils.ValidateUsername(req.Username) {
		return nil, errors.New("invalid username format")
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, errors.New("password too short")
	}

	// 检查用户名和邮箱是否已存在
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	// 密码哈希
	hashPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashPassword,
		Nickname:     nickname,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// 生成token
	token, err := pkgutils.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

// Login 登录用户
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 验证密码
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	// 生成token
	token, err := pkgutils.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

// GetProfile 获取用户资料
func (s *AuthService) GetProfile(userID uint) (*UserDTO, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// UpdateProfile 更新昵称/头像
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*UserDTO, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func toUserDTO(user *models.User) *UserDTO {
	return &UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Nickname:  user.Nickname,
		AvatarURL: user.AvatarURL,
	}
}
