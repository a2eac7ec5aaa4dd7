package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/serializer"
	"issue-tracker/internal/service"
	"issue-tracker/internal/transport/http/ez"
)

// ProjectHandler /projects
type ProjectHandler struct {
	svc *service.ProjectService
	log *zap.Logger
}

func NewProjectHandler(svc *service.ProjectService, l *zap.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, log: l}
}

func (h *ProjectHandler) Priority() int { return 20 }

func (h *ProjectHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[struct{}, []serializer.ProjectView]{
		Method: http.MethodGet,
		Path:   "/projects",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]serializer.ProjectView, error) {
			ps, err := h.svc.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return serializer.Projects(ps, serializer.ProjectOptions{}), nil
		},
	})

	ez.RegisterAction(e, ez.Action[service.ProjectInput, serializer.ProjectView]{
		Method: http.MethodPost,
		Path:   "/projects",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.ProjectInput) (serializer.ProjectView, error) {
			p, err := h.svc.Create(c.Request.Context(), *in)
			if err != nil {
				return serializer.ProjectView{}, err
			}
			return serializer.Project(p, serializer.ProjectOptions{}), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, serializer.ProjectView]{
		Method: http.MethodGet,
		Path:   "/projects/:project_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (serializer.ProjectView, error) {
			id, err := ez.ParamID(c, "project_id", "Project")
			if err != nil {
				return serializer.ProjectView{}, err
			}
			p, err := h.svc.Get(c.Request.Context(), id)
			if err != nil {
				return serializer.ProjectView{}, err
			}
			return serializer.Project(p, serializer.ProjectOptions{}), nil
		},
	})

	update := func(c *gin.Context, in *service.ProjectInput) (serializer.ProjectView, error) {
		id, err := ez.ParamID(c, "project_id", "Project")
		if err != nil {
			return serializer.ProjectView{}, err
		}
		p, err := h.svc.Update(c.Request.Context(), id, *in)
		if err != nil {
			return serializer.ProjectView{}, err
		}
		return serializer.Project(p, serializer.ProjectOptions{}), nil
	}
	for _, m := range []string{http.MethodPut, http.MethodPatch} {
		ez.RegisterAction(e, ez.Action[service.ProjectInput, serializer.ProjectView]{
			Method: m, Path: "/projects/:project_id", Binder: ez.BindJSON, Handler: update,
		})
	}

	// 级联删除 issues 及其 comments
	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/projects/:project_id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ez.ParamID(c, "project_id", "Project")
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
