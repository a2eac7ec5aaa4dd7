package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/domain"
)

// ErrorBody 统一错误响应
type ErrorBody struct {
	Error     string   `json:"error"`
	Message   string   `json:"message,omitempty"`
	Details   []string `json:"details,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// New 通用错误体
func New(status int, msg string) ErrorBody {
	title := TitleMap[status]
	if title == "" {
		title = http.StatusText(status)
	}
	return ErrorBody{Error: title, Message: msg}
}

// FromError 把业务错误转换成 (status, body)。
// Internal 的具体原因不返回给客户端。
func FromError(err error) (int, ErrorBody) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, ErrorBody{
			Error:     TitleMap[http.StatusInternalServerError],
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
	}
	status := StatusOf(de.Kind)
	switch de.Kind {
	case domain.KindValidation:
		return status, ErrorBody{Error: "Validation failed", Details: de.Details}
	case domain.KindNotFound:
		return status, ErrorBody{Error: TitleMap[status], Message: de.Message}
	case domain.KindReference, domain.KindConflict:
		return status, ErrorBody{Error: de.Message}
	}
	msg := de.Message
	if msg == "" {
		msg = TitleMap[status]
	}
	return status, ErrorBody{Error: msg, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// Fail 写错误响应；500 记录原因
func Fail(c *gin.Context, l *zap.Logger, err error) {
	status, body := FromError(err)
	if status >= http.StatusInternalServerError && l != nil {
		l.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("rid", c.GetString("X-Request-ID")),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// Abort 中间件用：直接按状态码返回
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, New(status, msg))
}
