package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/core/server"
	"issue-tracker/internal/service"
	"issue-tracker/internal/transport/http/handler"
	mdw "issue-tracker/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：只监听内网端口，访问日志/恢复走 ginzap
func NewAdminEngine(l *zap.Logger, svc *service.Services, o Options) *gin.Engine {
	if l == nil {
		l = zap.NewNop()
	}
	r := server.NewRouter(l, o.CORSOrigins)
	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(o.MaxConcurrency, o.QueueWait),
		mdw.Timeout(o.Timeout, l),
		mdw.Metrics(),
	)

	r.GET("/health", handler.Health(o.Env))
	r.GET("/metrics", mdw.MetricsHandler())

	admin := r.Group("/admin/v1")
	NewRegistry(handler.NewAdminHandler(svc, l.Named("http.admin"))).MountAdmin(admin)

	return r
}
