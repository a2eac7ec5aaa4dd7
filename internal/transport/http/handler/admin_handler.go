package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/serializer"
	"issue-tracker/internal/service"
	"issue-tracker/internal/transport/http/ez"
)

// AdminHandler 运维接口：挂在 /admin/v1，只在管理端口暴露
type AdminHandler struct {
	svc *service.Services
	log *zap.Logger
}

func NewAdminHandler(svc *service.Services, l *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: l}
}

type purgeOut struct {
	ID uint `json:"id"`
	*service.PurgeResult
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	// 含已停用用户
	ez.RegisterAction(e, ez.Action[struct{}, []serializer.UserView]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]serializer.UserView, error) {
			users, err := h.svc.Users.ListAll(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return serializer.Users(users, serializer.UserOptions{}), nil
		},
	})

	// 硬删除：走删除传播表，reported issues 存在时 409
	ez.RegisterAction(e, ez.Action[struct{}, purgeOut]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (purgeOut, error) {
			id, err := ez.ParamID(c, "id", "User")
			if err != nil {
				return purgeOut{}, err
			}
			res, err := h.svc.Users.Purge(c.Request.Context(), id)
			if err != nil {
				return purgeOut{}, err
			}
			return purgeOut{ID: id, PurgeResult: res}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, serializer.UserView]{
		Method: http.MethodPost,
		Path:   "/users/:id/reactivate",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (serializer.UserView, error) {
			id, err := ez.ParamID(c, "id", "User")
			if err != nil {
				return serializer.UserView{}, err
			}
			if err := h.svc.Users.Reactivate(c.Request.Context(), id); err != nil {
				return serializer.UserView{}, err
			}
			u, err := h.svc.Users.Get(c.Request.Context(), id)
			if err != nil {
				return serializer.UserView{}, err
			}
			return serializer.User(u, serializer.UserOptions{}), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/db-info",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			counts, err := h.svc.Store.TableCounts(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return gin.H{
				"driver": h.svc.Store.DB().Dialector.Name(),
				"tables": counts,
			}, nil
		},
	})
}
