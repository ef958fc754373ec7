package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foodgram/internal/utils"
	"foodgram/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ConcurrencyLimit 限制某个接口同时处理的请求数，等待超过 maxWait 返回429
func ConcurrencyLimit(limiter redis_limiter.Limiter, key string, maxWait time.Duration, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := limiter.Acquire(ctx, key, maxWait); err != nil {
			if errors.Is(err, redis_limiter.ErrLimitReached) {
				utils.ErrorResponse(c, http.StatusTooManyRequests, "请求过多，请稍后再试")
				c.Abort()
				return
			}
			if ctx.Err() != nil {
				c.Abort()
				return
			}
			// 限流器不可用时不阻塞请求
			logger.WithError(err).WithField("key", key).Warn("获取并发槽位失败")
			c.Next()
			return
		}
		// 客户端断开后仍需释放槽位
		defer limiter.Release(context.WithoutCancel(ctx), key)

		c.Next()
	}
}
