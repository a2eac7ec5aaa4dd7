package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "issue-tracker/internal/transport/http/response"
)

// RateLimit 全局令牌桶
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		tooMany(c, rps)
	}
}

type ipBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// 超过该数量时清理闲置的桶
const (
	maxIPBuckets = 10000
	ipBucketIdle = 10 * time.Minute
)

// RateLimitPerIP 每个客户端 IP 一个令牌桶
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	buckets := make(map[string]*ipBucket)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			if len(buckets) >= maxIPBuckets {
				for k, v := range buckets {
					if now.Sub(v.lastSeen) > ipBucketIdle {
						delete(buckets, k)
					}
				}
			}
			b = &ipBucket{lim: rate.NewLimiter(rps, burst)}
			buckets[ip] = b
		}
		b.lastSeen = now
		allowed := b.lim.Allow()
		mu.Unlock()

		if allowed {
			c.Next()
			return
		}
		tooMany(c, rps)
	}
}

// tooMany 429，Retry-After 取补满一个令牌所需的秒数
func tooMany(c *gin.Context, rps rate.Limit) {
	retry := 1
	if rps > 0 && rps < 1 {
		retry = int(math.Ceil(1 / float64(rps)))
	}
	c.Header("Retry-After", strconv.Itoa(retry))
	resp.Abort(c, http.StatusTooManyRequests, "too many requests")
}
