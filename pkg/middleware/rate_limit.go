package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter counts calls per (route, client) in redis so the windows
// survive process restarts. A nil limiter disables limiting, which is
// what tests and local setups without redis get.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	if rdb == nil {
		return nil
	}

	return &RateLimiter{rdb: rdb}
}

// Limit allows at most times calls per window for each client on the
// given route. The window is fixed, anchored at the first call.
func (r *RateLimiter) Limit(route string, times int, window time.Duration) gin.HandlerFunc {
	if r == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("rl:%s:%s", route, c.ClientIP())

		count, err := r.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Rather serve than lock everyone out while redis is down
			zap.L().Error("Rate limiter unavailable", zap.Error(err), zap.String("route", route))
			c.Next()
			return
		}

		if count == 1 {
			if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
				zap.L().Error("Failed to set rate window expiry", zap.Error(err), zap.String("route", route))
			}
		}

		if count > int64(times) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
