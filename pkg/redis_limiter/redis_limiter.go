package redis_limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ErrLimitReached 等待超时仍未获得槽位
var ErrLimitReached = errors.New("并发限制已达到上限")

// Limiter 并发限制器
type Limiter interface {
	// Acquire 在 maxWait 内获取槽位，超时返回 ErrLimitReached
	Acquire(ctx context.Context, key string, maxWait time.Duration) error
	Release(ctx context.Context, key string)
}

// acquireScript 当前值小于上限时加一并刷新过期时间，否则返回上限+1
var acquireScript = redis.NewScript(`local current = redis.call('GET', KEYS[1])
if current == false then
	current = 0
else
	current = tonumber(current)
end
if current >= tonumber(ARGV[1]) then
	return current + 1
end
local newCount = redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
return newCount`)

// releaseScript 计数减一，归零时删除key
var releaseScript = redis.NewScript(`local count = redis.call('DECR', KEYS[1])
if tonumber(count) <= 0 then
	redis.call('DEL', KEYS[1])
	return 0
end
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
return count`)

// RedisLimiter 基于Redis的并发限制器，多实例部署时共享计数
type RedisLimiter struct {
	client        *redis.Client
	maxConcurrent int
	keyPrefix     string
	ttl           time.Duration
	logger        *logrus.Logger
}

// NewRedisLimiter 创建基于Redis的并发限制器
func NewRedisLimiter(client *redis.Client, maxConcurrent int, keyPrefix string, ttl time.Duration, logger *logrus.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:        client,
		maxConcurrent: maxConcurrent,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
		logger:        logger,
	}
}

// TryAcquire 尝试获取一次槽位
func (rl *RedisLimiter) TryAcquire(ctx context.Context, key string) (bool, error) {
	result, err := acquireScript.Run(ctx, rl.client, []string{rl.keyPrefix + key}, rl.maxConcurrent, int(rl.ttl.Seconds())).Int()
	if err != nil {
		return false, fmt.Errorf("执行Lua脚本失败: %w", err)
	}
	return result <= rl.maxConcurrent, nil
}

// Acquire 轮询获取槽位，重试间隔指数退避
func (rl *RedisLimiter) Acquire(ctx context.Context, key string, maxWait time.Duration) error {
	return pollAcquire(ctx, maxWait, func() (bool, error) {
		ok, err := rl.TryAcquire(ctx, key)
		if err == nil && !ok {
			rl.logger.WithFields(logrus.Fields{"key": key, "max": rl.maxConcurrent}).Debug("槽位已满，等待重试")
		}
		return ok, err
	})
}

// Release 释放槽位
func (rl *RedisLimiter) Release(ctx context.Context, key string) {
	if err := releaseScript.Run(ctx, rl.client, []string{rl.keyPrefix + key}, int(rl.ttl.Seconds())).Err(); err != nil {
		rl.logger.WithError(err).WithField("key", key).Warn("释放并发槽位失败")
	}
}

// GetCurrent 获取当前并发数
func (rl *RedisLimiter) GetCurrent(ctx context.Context, key string) (int, error) {
	current, err := rl.client.Get(ctx, rl.keyPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("获取当前并发数失败: %w", err)
	}
	return current, nil
}

// GetMaxConcurrent 获取最大并发数
func (rl *RedisLimiter) GetMaxConcurrent() int {
	return rl.maxConcurrent
}

// LocalLimiter 进程内并发限制器，未启用Redis时使用
type LocalLimiter struct {
	slots chan struct{}
}

// NewLocalLimiter 创建进程内并发限制器
func NewLocalLimiter(maxConcurrent int) *LocalLimiter {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &LocalLimiter{slots: make(chan struct{}, maxConcurrent)}
}

// Acquire 获取槽位，key 被忽略
func (l *LocalLimiter) Acquire(ctx context.Context, _ string, maxWait time.Duration) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrLimitReached
	case <-ctx.Done():
		return fmt.Errorf("上下文已取消: %w", ctx.Err())
	}
}

// Release 释放槽位
func (l *LocalLimiter) Release(_ context.Context, _ string) {
	select {
	case <-l.slots:
	default:
	}
}

// InUse 当前占用的槽位数
func (l *LocalLimiter) InUse() int {
	return len(l.slots)
}

func pollAcquire(ctx context.Context, maxWait time.Duration, try func() (bool, error)) error {
	start := time.Now()
	retryInterval := 100 * time.Millisecond
	maxRetryInterval := 2 * time.Second

	for {
		ok, err := try()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if time.Since(start) >= maxWait {
			return ErrLimitReached
		}

		select {
		case <-time.After(retryInterval):
			retryInterval *= 2
			if retryInterval > maxRetryInterval {
				retryInterval = maxRetryInterval
			}
		case <-ctx.Done():
			return fmt.Errorf("上下文已取消: %w", ctx.Err())
		}
	}
}
