package service

import (
	"context"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/repo"
)

// ReferenceValidator 写入前检查外键目标是否存在。
// 只看存在性：停用的用户依然是合法的 reporter / assignee / 评论作者。
type ReferenceValidator struct{ store *repo.Store }

func NewReferenceValidator(store *repo.Store) ReferenceValidator {
	return ReferenceValidator{store: store}
}

func (v ReferenceValidator) Exists(ctx context.Context, e domain.Entity, id uint) (bool, error) {
	ok, err := v.store.Exists(ctx, e, id)
	if err != nil {
		return false, domain.Internal("check "+e.Label()+" reference", err)
	}
	return ok, nil
}

func (v ReferenceValidator) require(ctx context.Context, e domain.Entity, id uint, msg string) error {
	ok, err := v.Exists(ctx, e, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ReferenceError(msg)
	}
	return nil
}

// IssueRefs reporter 必须存在；assignee 仅在给出非空值时检查
func (v ReferenceValidator) IssueRefs(ctx context.Context, reporterID uint, assignedToID *uint) error {
	if err := v.require(ctx, domain.EntityUser, reporterID, "Reporter not found"); err != nil {
		return err
	}
	if assignedToID != nil {
		return v.require(ctx, domain.EntityUser, *assignedToID, "Assigned user not found")
	}
	return nil
}

func (v ReferenceValidator) CommentRefs(ctx context.Context, userID uint) error {
	return v.require(ctx, domain.EntityUser, userID, "User not found")
}
