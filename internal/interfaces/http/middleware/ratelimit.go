// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
	"github.com/DanieelRC/LegislaBot/pkg/metrics"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// Enabled 是否启用限流
	Enabled bool
	// Requests 窗口内允许的请求数
	Requests int
	// Window 滑动窗口长度
	Window time.Duration
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// KeyFunc 由客户端标识与路由构造限流 Key
type KeyFunc func(clientID, endpoint string) string

// RateLimit 限流中间件，按客户端 IP 与路由计数
func RateLimit(cfg RateLimitConfig, limiter RateLimiter, keyFn KeyFunc) gin.HandlerFunc {
	// 如果未启用限流，返回空中间件
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	// 设置默认值
	if cfg.Requests <= 0 {
		cfg.Requests = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := limiter.Allow(c.Request.Context(), keyFn(c.ClientIP(), path), cfg.Requests, cfg.Window)
		if err != nil {
			// 限流器故障时放行，避免影响业务
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitRejected.WithLabelValues(path).Inc()
			dto.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
