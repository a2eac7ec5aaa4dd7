package service

import (
	"context"

	"go.uber.org/zap"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/repo"
)

// CommentInput 创建：content / user_id / is_internal
type CommentInput struct {
	Content    *string `json:"content"`
	UserID     *uint   `json:"user_id"`
	IsInternal *bool   `json:"is_internal"`
}

// CommentUpdateInput 更新只允许 content / is_internal
type CommentUpdateInput struct {
	Content    *string `json:"content"`
	IsInternal *bool   `json:"is_internal"`
}

type CommentService struct {
	store *repo.Store
	lc    *Lifecycle
	log   *zap.Logger
}

func NewCommentService(store *repo.Store, lc *Lifecycle, log *zap.Logger) *CommentService {
	return &CommentService{store: store, lc: lc, log: log}
}

func requireIssue(ctx context.Context, tx *repo.Store, projectID, issueID uint) error {
	if err := requireProject(ctx, tx, projectID); err != nil {
		return err
	}
	i, err := tx.Issues.FindInProject(ctx, projectID, issueID)
	if err != nil {
		return domain.Internal("load issue", err)
	}
	if i == nil {
		return domain.NotFound("Issue")
	}
	return nil
}

// List 按时间正序，附带作者
func (s *CommentService) List(ctx context.Context, projectID, issueID uint) ([]domain.Comment, error) {
	if err := requireIssue(ctx, s.store, projectID, issueID); err != nil {
		return nil, err
	}
	items, err := s.store.Comments.ListByIssue(ctx, issueID)
	if err != nil {
		return nil, domain.Internal("Failed to fetch comments", err)
	}
	return items, nil
}

func (s *CommentService) Create(ctx context.Context, projectID, issueID uint, in CommentInput) (*domain.Comment, error) {
	var out *domain.Comment
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		if err := requireIssue(ctx, tx, projectID, issueID); err != nil {
			return err
		}
		c := &domain.Comment{IssueID: issueID}
		if in.Content != nil {
			c.Content = *in.Content
		}
		if in.UserID != nil {
			c.UserID = *in.UserID
		}
		if in.IsInternal != nil {
			c.IsInternal = *in.IsInternal
		}
		if err := NewReferenceValidator(tx).CommentRefs(ctx, c.UserID); err != nil {
			return err
		}
		if err := domain.Validate(c); err != nil {
			return err
		}
		if err := tx.Comments.Create(ctx, c); err != nil {
			return domain.Internal("Failed to create comment", err)
		}
		created, err := tx.Comments.FindByID(ctx, c.ID)
		if err != nil {
			return domain.Internal("Failed to create comment", err)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("comment created", zap.Uint("id", out.ID), zap.Uint("issue_id", issueID))
	return out, nil
}

func (s *CommentService) Update(ctx context.Context, id uint, in CommentUpdateInput) (*domain.Comment, error) {
	var out *domain.Comment
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		c, err := tx.Comments.FindByID(ctx, id)
		if err != nil {
			return domain.Internal("Failed to update comment", err)
		}
		if c == nil {
			return domain.NotFound("Comment")
		}
		if in.Content != nil {
			c.Content = *in.Content
		}
		if in.IsInternal != nil {
			c.IsInternal = *in.IsInternal
		}
		if err := domain.Validate(c); err != nil {
			return err
		}
		if err := tx.Comments.Update(ctx, c); err != nil {
			return domain.Internal("Failed to update comment", err)
		}
		out = c
		return nil
	})
	return out, err
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *repo.Store) error {
		_, err := s.lc.HardDelete(ctx, tx, domain.EntityComment, id)
		return err
	})
}
