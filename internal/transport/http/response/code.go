package response

import (
	"net/http"

	"issue-tracker/internal/domain"
)

// StatusOf 业务错误 → HTTP 状态码；未知错误一律 500
func StatusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindReference:
		return http.StatusBadRequest
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// TitleMap 响应体 error 字段（Reference/Conflict 直接用业务信息）
var TitleMap = map[int]string{
	http.StatusBadRequest:            "Bad request",
	http.StatusNotFound:              "Resource not found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "Payload too large",
	http.StatusUnprocessableEntity:   "Validation failed",
	http.StatusTooManyRequests:       "Too many requests",
	http.StatusServiceUnavailable:    "Server busy",
	http.StatusGatewayTimeout:        "Timeout",
	http.StatusInternalServerError:   "Internal server error",
}
