package handlers

import (
	"errors"
	"net/http"

	"github.com/Gopher0727/DailyQ/internal/services"
)

// statusForError 将服务层哨兵错误映射为 HTTP 状态码
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotGroupOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrNoDailyQuestion),
		errors.Is(err, services.ErrNoQuestions):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrInvalidGroupName),
		errors.Is(err, services.ErrInvalidContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
