package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"issue-tracker/internal/core/config"
	"issue-tracker/internal/core/server"
	"issue-tracker/internal/service"
	"issue-tracker/internal/transport/http/handler"
	mdw "issue-tracker/internal/transport/http/middleware"
)

// Options 引擎级参数（限流、超时、CORS）
type Options struct {
	Env            string
	CORSOrigins    []string
	RPS            float64
	Burst          int
	PerIPRPS       float64
	PerIPBurst     int
	MaxConcurrency int64
	QueueWait      time.Duration // 并发满时的最长排队时间
	MaxBodyBytes   int64
	Timeout        time.Duration
}

func DefaultOptions() Options {
	return Options{
		Env:            "development",
		RPS:            200,
		Burst:          400,
		PerIPRPS:       50,
		PerIPBurst:     100,
		MaxConcurrency: 300,
		QueueWait:      2 * time.Second,
		MaxBodyBytes:   16 << 20,
		Timeout:        10 * time.Second,
	}
}

// OptionsFrom 配置 → 引擎参数；未配置的项沿用默认值
func OptionsFrom(cfg *config.Config) Options {
	o := DefaultOptions()
	o.Env = cfg.App.Env
	o.CORSOrigins = cfg.App.CORSOrigins
	if cfg.Limits.RPS > 0 {
		o.RPS, o.Burst = cfg.Limits.RPS, cfg.Limits.Burst
	}
	if cfg.Limits.PerIPRPS > 0 {
		o.PerIPRPS, o.PerIPBurst = cfg.Limits.PerIPRPS, cfg.Limits.PerIPBurst
	}
	if cfg.Limits.MaxConcurrency > 0 {
		o.MaxConcurrency = cfg.Limits.MaxConcurrency
	}
	if cfg.Limits.QueueWaitMs > 0 {
		o.QueueWait = time.Duration(cfg.Limits.QueueWaitMs) * time.Millisecond
	}
	if cfg.Limits.MaxBodyBytes > 0 {
		o.MaxBodyBytes = cfg.Limits.MaxBodyBytes
	}
	if cfg.Limits.TimeoutSec > 0 {
		o.Timeout = time.Duration(cfg.Limits.TimeoutSec) * time.Second
	}
	return o
}

func (o Options) middleware(l *zap.Logger) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		mdw.RequestID(),
		server.CORS(o.CORSOrigins),
		mdw.RateLimit(rate.Limit(o.RPS), o.Burst),
		mdw.RateLimitPerIP(rate.Limit(o.PerIPRPS), o.PerIPBurst),
		mdw.ConcurrencyLimit(o.MaxConcurrency, o.QueueWait),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.Timeout, l),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	}
}

func NewAPIEngine(l *zap.Logger, svc *service.Services, o Options) *gin.Engine {
	if l == nil {
		l = zap.NewNop()
	}
	r := gin.New()
	r.Use(o.middleware(l)...)

	// 健康检查 / 指标
	r.GET("/health", handler.Health(o.Env))
	r.GET("/metrics", mdw.MetricsHandler())

	// 前缀
	api := r.Group("/api/v1")

	reg := NewRegistry(
		handler.NewUserHandler(svc.Users, l.Named("http.users")),
		handler.NewProjectHandler(svc.Projects, l.Named("http.projects")),
		handler.NewIssueHandler(svc.Issues, l.Named("http.issues")),
		handler.NewCommentHandler(svc.Comments, l.Named("http.comments")),
	)
	reg.MountAPI(api)

	return r
}
