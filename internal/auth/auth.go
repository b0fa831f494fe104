// Package auth 用户认证：密码哈希、标识符生成、会话 cookie、权限判定
package auth

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 密码哈希代价因子
const bcryptCost = 10

// HashPassword 使用 bcrypt 哈希密码
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword 验证密码（bcrypt 自带恒定时间比较）
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewID 生成全局唯一标识符（UUID v4，128 位随机）
func NewID() string {
	return uuid.NewString()
}

// NewInviteCode 生成邀请码：16 字节原始随机数的十六进制编码（32 字符）
// 邀请码是注册的唯一门槛，熵量刻意高于 UUID 以抗猜测
func NewInviteCode() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 失败意味着系统熵源不可用，无法安全降级
		panic("auth: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
