package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 认证头支持的前缀
var authSchemes = []string{"Bearer", "Token"}

var (
	// ErrMissingToken 请求未携带Token
	ErrMissingToken = errors.New("缺少Token")
	// ErrAuthScheme 认证头格式不正确
	ErrAuthScheme = errors.New("无效的认证格式")
	// ErrInvalidToken Token签名、算法或有效期不正确
	ErrInvalidToken = errors.New("Token无效或已过期")
)

// JWTClaims Token声明，RegisteredClaims.ID 用于注销
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// RemainingTTL Token剩余有效期
func (c *JWTClaims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if ttl := time.Until(c.ExpiresAt.Time); ttl > 0 {
		return ttl
	}
	return 0
}

// JWTManager 签发和校验访问Token
type JWTManager struct {
	secretKey []byte
	method    jwt.SigningMethod
	ttl       time.Duration
	parser    *jwt.Parser
}

// NewJWTManager 创建JWT管理器，algorithm 为空时使用HS256
func NewJWTManager(secretKey string, algorithm string, ttl time.Duration) *JWTManager {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &JWTManager{
		secretKey: []byte(secretKey),
		method:    method,
		ttl:       ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// GenerateToken 为用户签发Token
func (j *JWTManager) GenerateToken(userID uint, username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("签名Token失败: %w", err)
	}
	return signed, nil
}

// ValidateToken 校验Token，失败时返回包装了 ErrInvalidToken 的错误
func (j *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	_, err := j.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: 缺少jti", ErrInvalidToken)
	}
	return claims, nil
}

// ParseAuthorization 从 "Bearer <token>" 或 "Token <token>" 中取出Token
func ParseAuthorization(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok {
		return "", ErrAuthScheme
	}
	token = strings.TrimSpace(token)
	for _, s := range authSchemes {
		if strings.EqualFold(scheme, s) && token != "" {
			return token, nil
		}
	}
	return "", ErrAuthScheme
}
