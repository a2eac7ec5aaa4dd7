package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "issue-tracker/internal/transport/http/response"
)

// ConcurrencyLimit 同时处理的请求数上限（保护数据库连接池）。
// 名额满时最多排队 wait；wait<=0 表示一直等到请求上下文结束。
func ConcurrencyLimit(max int64, wait time.Duration) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if !sem.TryAcquire(1) {
			ctx := c.Request.Context()
			if wait > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, wait)
				defer cancel()
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				c.Header("Retry-After", "1")
				resp.Abort(c, http.StatusServiceUnavailable, "server busy")
				return
			}
		}
		defer sem.Release(1)
		c.Next()
	}
}
