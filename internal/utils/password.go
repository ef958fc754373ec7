package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes bcrypt 只使用前72字节
const MaxPasswordBytes = 72

// ErrPasswordTooLong 密码超过 MaxPasswordBytes
var ErrPasswordTooLong = errors.New("密码长度不能超过72字节")

// PasswordCost bcrypt计算成本，测试中可调低
var PasswordCost = bcrypt.DefaultCost

// HashPassword 哈希密码
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword 验证密码
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsPasswordHash 判断字符串是否已经是bcrypt哈希
func IsPasswordHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
