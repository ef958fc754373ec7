package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedTokenPrefix = "foodgram:revoked:"

// TokenRepository 已注销令牌的黑名单，client 为 nil 时不记录
type TokenRepository struct {
	client *redis.Client
}

// NewTokenRepository 创建令牌Repository
func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

// Enabled 是否启用了黑名单
func (r *TokenRepository) Enabled() bool {
	return r.client != nil
}

// Revoke 将令牌ID加入黑名单，直到令牌自然过期
func (r *TokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if r.client == nil || tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("写入令牌黑名单失败: %w", err)
	}
	return nil
}

// IsRevoked 令牌是否已注销
func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.client == nil || tokenID == "" {
		return false, nil
	}
	err := r.client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("查询令牌黑名单失败: %w", err)
	}
	return true, nil
}
