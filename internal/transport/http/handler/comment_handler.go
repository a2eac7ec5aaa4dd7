package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/serializer"
	"issue-tracker/internal/service"
	"issue-tracker/internal/transport/http/ez"
)

// CommentHandler 列表/创建挂在 issue 下；更新/删除走 /comments/:id
type CommentHandler struct {
	svc *service.CommentService
	log *zap.Logger
}

func NewCommentHandler(svc *service.CommentService, l *zap.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: l}
}

func (h *CommentHandler) Priority() int { return 40 }

func (h *CommentHandler) MountAPI(g *gin.RouterGroup) {
	root := ez.New(g, h.log)
	nested := root.Group("/projects/:project_id/issues/:issue_id/comments")

	ez.RegisterAction(nested, ez.Action[struct{}, []serializer.CommentView]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]serializer.CommentView, error) {
			projectID, issueID, err := ids(c)
			if err != nil {
				return nil, err
			}
			items, err := h.svc.List(c.Request.Context(), projectID, issueID)
			if err != nil {
				return nil, err
			}
			return serializer.Comments(items, serializer.CommentOptions{}), nil
		},
	})

	ez.RegisterAction(nested, ez.Action[service.CommentInput, serializer.CommentView]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CommentInput) (serializer.CommentView, error) {
			projectID, issueID, err := ids(c)
			if err != nil {
				return serializer.CommentView{}, err
			}
			cm, err := h.svc.Create(c.Request.Context(), projectID, issueID, *in)
			if err != nil {
				return serializer.CommentView{}, err
			}
			return serializer.Comment(cm, serializer.CommentOptions{}), nil
		},
	})

	update := func(c *gin.Context, in *service.CommentUpdateInput) (serializer.CommentView, error) {
		id, err := ez.ParamID(c, "id", "Comment")
		if err != nil {
			return serializer.CommentView{}, err
		}
		cm, err := h.svc.Update(c.Request.Context(), id, *in)
		if err != nil {
			return serializer.CommentView{}, err
		}
		return serializer.Comment(cm, serializer.CommentOptions{}), nil
	}
	for _, m := range []string{http.MethodPut, http.MethodPatch} {
		ez.RegisterAction(root, ez.Action[service.CommentUpdateInput, serializer.CommentView]{
			Method: m, Path: "/comments/:id", Binder: ez.BindJSON, Handler: update,
		})
	}

	ez.RegisterAction(root, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/comments/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ez.ParamID(c, "id", "Comment")
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
