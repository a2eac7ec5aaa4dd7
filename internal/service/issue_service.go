package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/repo"
)

// IssueInput 创建时 reporter_id 必填；更新时全部可选
type IssueInput struct {
	Title        *string                             `json:"title"`
	Description  domain.Optional[string]             `json:"description"`
	Status       domain.Optional[domain.IssueStatus] `json:"status"`
	Priority     domain.Optional[domain.Priority]    `json:"priority"`
	AssignedToID domain.Optional[uint]               `json:"assigned_to_id"`
	ReporterID   *uint                               `json:"reporter_id"`
	DueDate      domain.Optional[domain.Date]        `json:"due_date"`
}

type IssueService struct {
	store *repo.Store
	lc    *Lifecycle
	log   *zap.Logger
}

func NewIssueService(store *repo.Store, lc *Lifecycle, log *zap.Logger) *IssueService {
	return &IssueService{store: store, lc: lc, log: log}
}

func (s *IssueService) apply(i *domain.Issue, in IssueInput) {
	if in.Title != nil {
		i.Title = strings.TrimSpace(*in.Title)
	}
	in.Status.ApplyTo(&i.Status)
	in.Priority.ApplyTo(&i.Priority)
	if in.ReporterID != nil {
		i.ReporterID = *in.ReporterID
	}
	in.Description.Apply(&i.Description)
	in.AssignedToID.Apply(&i.AssignedToID)
	in.DueDate.Apply(&i.DueDate)
}

func requireProject(ctx context.Context, tx *repo.Store, projectID uint) error {
	ok, err := tx.Exists(ctx, domain.EntityProject, projectID)
	if err != nil {
		return domain.Internal("load project", err)
	}
	if !ok {
		return domain.NotFound("Project")
	}
	return nil
}

// List 列表视图：带关联，不带评论
func (s *IssueService) List(ctx context.Context, projectID uint) ([]domain.Issue, error) {
	if err := requireProject(ctx, s.store, projectID); err != nil {
		return nil, err
	}
	items, err := s.store.Issues.ListByProject(ctx, projectID)
	if err != nil {
		return nil, domain.Internal("Failed to fetch issues", err)
	}
	return items, nil
}

// Get 详情：关联 + 按时间排序的评论（可关闭）
func (s *IssueService) Get(ctx context.Context, projectID, id uint, withComments bool) (*domain.Issue, error) {
	if err := requireProject(ctx, s.store, projectID); err != nil {
		return nil, err
	}
	i, err := s.store.Issues.FindDetail(ctx, projectID, id, withComments)
	if err != nil {
		return nil, domain.Internal("Failed to fetch issue", err)
	}
	if i == nil {
		return nil, domain.NotFound("Issue")
	}
	return i, nil
}

// Create 校验 project / reporter / assignee 与写入在同一事务内
func (s *IssueService) Create(ctx context.Context, projectID uint, in IssueInput) (*domain.Issue, error) {
	var out *domain.Issue
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		if err := requireProject(ctx, tx, projectID); err != nil {
			return err
		}
		i := &domain.Issue{
			ProjectID: projectID,
			Status:    domain.IssueActive,
			Priority:  domain.PriorityMedium,
		}
		s.apply(i, in)
		refs := NewReferenceValidator(tx)
		if err := refs.IssueRefs(ctx, i.ReporterID, i.AssignedToID); err != nil {
			return err
		}
		if err := domain.Validate(i); err != nil {
			return err
		}
		if err := tx.Issues.Create(ctx, i); err != nil {
			return domain.Internal("Failed to create issue", err)
		}
		created, err := tx.Issues.FindDetail(ctx, projectID, i.ID, false)
		if err != nil {
			return domain.Internal("Failed to create issue", err)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("issue created", zap.Uint("id", out.ID), zap.Uint("project_id", projectID))
	return out, nil
}

// Update reporter_id / assigned_to_id 只在请求里给出时检查
func (s *IssueService) Update(ctx context.Context, projectID, id uint, in IssueInput) (*domain.Issue, error) {
	var out *domain.Issue
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		if err := requireProject(ctx, tx, projectID); err != nil {
			return err
		}
		i, err := tx.Issues.FindInProject(ctx, projectID, id)
		if err != nil {
			return domain.Internal("Failed to update issue", err)
		}
		if i == nil {
			return domain.NotFound("Issue")
		}
		refs := NewReferenceValidator(tx)
		if in.ReporterID != nil {
			if err := refs.IssueRefs(ctx, *in.ReporterID, nil); err != nil {
				return err
			}
		}
		if in.AssignedToID.Present() {
			ok, err := refs.Exists(ctx, domain.EntityUser, *in.AssignedToID.Value)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ReferenceError("Assigned user not found")
			}
		}
		s.apply(i, in)
		if err := domain.Validate(i); err != nil {
			return err
		}
		if err := tx.Issues.Update(ctx, i); err != nil {
			return domain.Internal("Failed to update issue", err)
		}
		updated, err := tx.Issues.FindDetail(ctx, projectID, id, false)
		if err != nil {
			return domain.Internal("Failed to update issue", err)
		}
		out = updated
		return nil
	})
	return out, err
}

// Delete 级联删除评论
func (s *IssueService) Delete(ctx context.Context, projectID, id uint) error {
	return s.store.Transaction(ctx, func(tx *repo.Store) error {
		if err := requireProject(ctx, tx, projectID); err != nil {
			return err
		}
		i, err := tx.Issues.FindInProject(ctx, projectID, id)
		if err != nil {
			return domain.Internal("Failed to delete issue", err)
		}
		if i == nil {
			return domain.NotFound("Issue")
		}
		_, err = s.lc.HardDelete(ctx, tx, domain.EntityIssue, id)
		return err
	})
}
