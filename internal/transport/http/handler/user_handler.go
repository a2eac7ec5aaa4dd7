package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/serializer"
	"issue-tracker/internal/service"
	"issue-tracker/internal/transport/http/ez"
)

// UserHandler /users
type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[struct{}, []serializer.UserView]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]serializer.UserView, error) {
			users, err := h.svc.ListActive(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return serializer.Users(users, serializer.UserOptions{}), nil
		},
	})

	ez.RegisterAction(e, ez.Action[service.UserInput, serializer.UserView]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.UserInput) (serializer.UserView, error) {
			u, err := h.svc.Create(c.Request.Context(), *in)
			if err != nil {
				return serializer.UserView{}, err
			}
			return serializer.User(u, serializer.UserOptions{}), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, serializer.UserView]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (serializer.UserView, error) {
			id, err := ez.ParamID(c, "id", "User")
			if err != nil {
				return serializer.UserView{}, err
			}
			u, err := h.svc.Get(c.Request.Context(), id)
			if err != nil {
				return serializer.UserView{}, err
			}
			return serializer.User(u, serializer.UserOptions{IncludeIssues: true}), nil
		},
	})

	update := func(c *gin.Context, in *service.UserInput) (serializer.UserView, error) {
		id, err := ez.ParamID(c, "id", "User")
		if err != nil {
			return serializer.UserView{}, err
		}
		u, err := h.svc.Update(c.Request.Context(), id, *in)
		if err != nil {
			return serializer.UserView{}, err
		}
		return serializer.User(u, serializer.UserOptions{}), nil
	}
	for _, m := range []string{http.MethodPut, http.MethodPatch} {
		ez.RegisterAction(e, ez.Action[service.UserInput, serializer.UserView]{
			Method: m, Path: "/users/:id", Binder: ez.BindJSON, Handler: update,
		})
	}

	// 软删除：is_active=false，不触发级联
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ez.ParamID(c, "id", "User")
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Deactivate(c.Request.Context(), id)
		},
	})
}
