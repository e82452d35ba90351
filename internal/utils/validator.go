package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MaxAnswerLength 答案内容上限（按字符数计，汉字/韩文均算一个字符）
const MaxAnswerLength = 100

// MaxGroupNameLength 组名上限
const MaxGroupNameLength = 20

// HashPassword 使用 bcrypt 对密码进行哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword 验证密码
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidateUsername 验证用户名格式（3-20个字符，字母数字下划线）
func ValidateUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	pattern := `^[a-zA-Z0-9_]+$`
	re := regexp.MustCompile(pattern)
	return re.MatchString(username)
}

// ValidateEmail 验证邮箱格式
func ValidateEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	re := regexp.MustCompile(pattern)
	return re.MatchString(email)
}

// ValidatePassword 验证密码强度（至少8个字符）
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// ValidateAnswerContent 验证答案内容：去除首尾空白后非空且不超过 100 字符
func ValidateAnswerContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}
	return utf8.RuneCountInString(trimmed) <= MaxAnswerLength
}

// ValidateGroupName 验证组名：非空且不超过 20 字符
func ValidateGroupName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	return utf8.RuneCountInString(trimmed) <= MaxGroupNameLength
}
