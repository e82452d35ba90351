package services

import "errors"

// 业务错误集中定义，handler 层用 errors.Is 映射到 HTTP 状态码
var (
	ErrInvalidCredentials = errors.New("username or password incorrect")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")

	ErrGroupNotFound     = errors.New("group not found")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrAlreadyMember     = errors.New("already a member of this group")
	ErrNotGroupOwner     = errors.New("only the group owner can do this")
	ErrInvalidGroupName  = errors.New("group name length invalid")

	ErrNoQuestions     = errors.New("no questions available")
	ErrNoDailyQuestion = errors.New("no daily question for this date")
	ErrInvalidContent  = errors.New("answer content empty or too long")
)
