package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/serializer"
	"issue-tracker/internal/service"
	"issue-tracker/internal/transport/http/ez"
)

var (
	issueListView   = serializer.IssueOptions{IncludeAssociations: true}
	issueDetailView = serializer.IssueOptions{IncludeAssociations: true, IncludeComments: true}
)

// IssueHandler /projects/:project_id/issues
type IssueHandler struct {
	svc *service.IssueService
	log *zap.Logger
}

func NewIssueHandler(svc *service.IssueService, l *zap.Logger) *IssueHandler {
	return &IssueHandler{svc: svc, log: l}
}

func (h *IssueHandler) Priority() int { return 30 }

// ids project_id + issue_id；project 先解析，缺失时报 Project not found
func ids(c *gin.Context) (projectID, issueID uint, err error) {
	if projectID, err = ez.ParamID(c, "project_id", "Project"); err != nil {
		return 0, 0, err
	}
	if issueID, err = ez.ParamID(c, "issue_id", "Issue"); err != nil {
		return 0, 0, err
	}
	return projectID, issueID, nil
}

func (h *IssueHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log).Group("/projects/:project_id/issues")

	ez.RegisterAction(e, ez.Action[struct{}, []serializer.IssueView]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]serializer.IssueView, error) {
			projectID, err := ez.ParamID(c, "project_id", "Project")
			if err != nil {
				return nil, err
			}
			items, err := h.svc.List(c.Request.Context(), projectID)
			if err != nil {
				return nil, err
			}
			return serializer.Issues(items, issueListView), nil
		},
	})

	ez.RegisterAction(e, ez.Action[service.IssueInput, serializer.IssueView]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.IssueInput) (serializer.IssueView, error) {
			projectID, err := ez.ParamID(c, "project_id", "Project")
			if err != nil {
				return serializer.IssueView{}, err
			}
			i, err := h.svc.Create(c.Request.Context(), projectID, *in)
			if err != nil {
				return serializer.IssueView{}, err
			}
			return serializer.Issue(i, issueListView), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, serializer.IssueView]{
		Method: http.MethodGet,
		Path:   "/:issue_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (serializer.IssueView, error) {
			projectID, id, err := ids(c)
			if err != nil {
				return serializer.IssueView{}, err
			}
			i, err := h.svc.Get(c.Request.Context(), projectID, id, true)
			if err != nil {
				return serializer.IssueView{}, err
			}
			return serializer.Issue(i, issueDetailView), nil
		},
	})

	update := func(c *gin.Context, in *service.IssueInput) (serializer.IssueView, error) {
		projectID, id, err := ids(c)
		if err != nil {
			return serializer.IssueView{}, err
		}
		i, err := h.svc.Update(c.Request.Context(), projectID, id, *in)
		if err != nil {
			return serializer.IssueView{}, err
		}
		return serializer.Issue(i, issueListView), nil
	}
	for _, m := range []string{http.MethodPut, http.MethodPatch} {
		ez.RegisterAction(e, ez.Action[service.IssueInput, serializer.IssueView]{
			Method: m, Path: "/:issue_id", Binder: ez.BindJSON, Handler: update,
		})
	}

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:issue_id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			projectID, id, err := ids(c)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Delete(c.Request.Context(), projectID, id)
		},
	})
}
