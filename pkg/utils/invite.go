package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

// 邀请码字母表：36 个大写字母数字符号
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength 邀请码长度
const InviteCodeLength = 6

var inviteCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// GenerateInviteCode 生成 6 位邀请码，每个字符在字母表上均匀分布
func GenerateInviteCode() string {
	code := make([]byte, InviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand 不可用时整个进程都有问题，直接 panic
			panic(err)
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code)
}

// ValidateInviteCode 校验邀请码格式（6 位大写字母数字）
func ValidateInviteCode(code string) bool {
	return inviteCodePattern.MatchString(code)
}
