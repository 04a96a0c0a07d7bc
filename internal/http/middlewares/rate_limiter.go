package middlewares

import (
	"net"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/http/envelope"
	"github.com/jobhive/jobhive/internal/ratelimit"
)

type RateLimiter struct {
	window ratelimit.Window
	limit  int
}

func NewRateLimiter(window ratelimit.Window, limit int) *RateLimiter {
	return &RateLimiter{window: window, limit: limit}
}

// Middleware enforces the fixed-window limit for a derived key. Backend
// failures fail open: dropping requests because Redis blinked is worse than
// a briefly unenforced limit.
func (rl *RateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			key = clientIP(c)
		}

		count, retryAfter, err := rl.window.Incr(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}

		if count > rl.limit {
			secs := int(retryAfter.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			envelope.Abort(c, envelope.TooManyRequests, "Too many requests. Please try again shortly.")
			return
		}

		c.Next()
	}
}

// KeyByIP buckets requests per client address. The limiter sits in front of
// the auth guards, so no finer-grained key is available at that point.
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()
	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}
