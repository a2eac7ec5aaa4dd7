package service

import (
	"go.uber.org/zap"

	"issue-tracker/internal/repo"
)

// Services 一个 Store 上的全部业务服务
type Services struct {
	Users     *UserService
	Projects  *ProjectService
	Issues    *IssueService
	Comments  *CommentService
	Lifecycle *Lifecycle
	Store     *repo.Store
}

func New(store *repo.Store, log *zap.Logger) *Services {
	if log == nil {
		log = zap.NewNop()
	}
	lc := NewLifecycle(log.Named("lifecycle"))
	return &Services{
		Users:     NewUserService(store, lc, log.Named("users")),
		Projects:  NewProjectService(store, lc, log.Named("projects")),
		Issues:    NewIssueService(store, lc, log.Named("issues")),
		Comments:  NewCommentService(store, lc, log.Named("comments")),
		Lifecycle: lc,
		Store:     store,
	}
}
