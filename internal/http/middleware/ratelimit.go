package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// SimpleRateLimiter is the in-process fixed-window limiter used when Redis is
// not configured.
type SimpleRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

func NewSimpleRateLimiter() *SimpleRateLimiter {
	return &SimpleRateLimiter{
		clients: make(map[string]*clientInfo),
		now:     time.Now,
	}
}

// Middleware blocks clients that send more than maxRequests per window.
func (l *SimpleRateLimiter) Middleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), maxRequests, window) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

func (l *SimpleRateLimiter) allow(ip string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	ci, ok := l.clients[ip]
	if !ok || now.Sub(ci.last) > window {
		l.clients[ip] = &clientInfo{last: now, count: 1}
		return true
	}

	ci.count++
	return ci.count <= maxRequests
}
