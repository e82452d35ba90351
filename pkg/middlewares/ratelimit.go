package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/DailyQ/utils/ratelimit"
)

// RateLimitMiddleware 按客户端 IP 限流。
// 计数器放在 Redis 里，多实例部署时限额仍然全局生效；
// Redis 故障时限流器 fail-open，不把限流做成单点
func RateLimitMiddleware(limiter ratelimit.Limiter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil || !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "请求过于频繁，请稍后再试",
			})
			return
		}
		c.Next()
	}
}

// MaxConcurrencyMiddleware 最大并发控制中间件。
// 用带缓冲的 channel 做信号量，限制同时处理的请求数，防止 Goroutine 数量失控
func MaxConcurrencyMiddleware(maxConcurrent int) gin.HandlerFunc {
	sem := make(chan struct{}, maxConcurrent)

	return func(c *gin.Context) {
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"code":    503,
				"message": "服务器繁忙，请稍后再试",
			})
		}
	}
}
