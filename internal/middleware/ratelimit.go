package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/pkg/logger"
	"github.com/futureintern/platform/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Counter increments a windowed counter. *db.Redis implements it.
type Counter interface {
	IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitConfig defines rate limiting parameters.
type RateLimitConfig struct {
	Name     string
	Requests int
	Window   time.Duration
}

// RateLimit allows cfg.Requests per client IP per window. When the counter
// store is unreachable the request is let through.
func RateLimit(counter Counter, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", cfg.Name, c.ClientIP())

		count, err := counter.IncrWithExpire(c.Request.Context(), key, cfg.Window)
		if err != nil {
			logger.Warn().Err(err).Str("limiter", cfg.Name).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		remaining := cfg.Requests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(cfg.Window).Unix(), 10))

		if int(count) > cfg.Requests {
			metrics.RateLimitedTotal.WithLabelValues(cfg.Name).Inc()
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many requests, please try again later").
				WithSeverity(dto.ErrorSeverityWarning)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
