package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

// RateLimitOptions configures a fixed-window limiter.
type RateLimitOptions struct {
	Prefix string
	Max    int64
	Window time.Duration
}

// RateLimit returns a fixed-window limiter keyed by user id, or client IP for anonymous requests.
// Redis failures let the request through.
func RateLimit(rdb *redis.Client, opts RateLimitOptions) gin.HandlerFunc {
	if opts.Window <= 0 {
		opts.Window = time.Second
	}
	return func(c *gin.Context) {
		subject := c.ClientIP()
		if uid := CurrentUserID(c); uid > 0 {
			subject = "u" + strconv.Itoa(uid)
		}
		if subject == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().UnixNano() / int64(opts.Window)
		key := fmt.Sprintf("%srate_limit:%s:%s:%d", opts.Prefix, c.FullPath(), subject, window)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, opts.Window+time.Second)
		}

		if count > opts.Max {
			c.Header("Retry-After", strconv.Itoa(int((opts.Window+time.Second-1)/time.Second)))
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
