package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "issue-tracker/internal/transport/http/response"
)

// MaxBodyBytes 请求体上限。声明的 Content-Length 超限直接 413；
// 未声明长度（chunked）的在绑定时由 ez 转成 413。
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if c.Request.ContentLength > n {
			resp.Abort(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
