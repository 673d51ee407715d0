package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Limiter enforces a fixed-window request cap per client IP, counted in
// Redis so every server instance shares the same windows. A nil Redis
// client disables enforcement; a Redis outage fails open.
type Limiter struct {
	rdb    *redis.Client
	logger *logrus.Logger
	window time.Duration
}

func NewLimiter(rdb *redis.Client, window time.Duration, logger *logrus.Logger) *Limiter {
	if logger == nil {
		logger = logrus.New()
	}
	return &Limiter{
		rdb:    rdb,
		logger: logger,
		window: window,
	}
}

// Middleware returns a gin middleware capping requests per window for the
// given scope. Scopes keep separate counters so the login cap does not
// consume the general budget.
func (l *Limiter) Middleware(scope string, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A sub-second window would divide by zero below; treat it as
		// no limit, like a missing client or cap.
		if l.rdb == nil || max <= 0 || l.window < time.Second {
			c.Next()
			return
		}

		windowStart := time.Now().Unix() / int64(l.window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", scope, c.ClientIP(), windowStart)

		pipe := l.rdb.TxPipeline()
		count := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, l.window)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			l.logger.WithError(err).Warn("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count.Val() > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}
