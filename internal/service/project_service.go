package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/repo"
)

// ProjectInput 可写字段：name / description / status / start_date / end_date
type ProjectInput struct {
	Name        *string                               `json:"name"`
	Description domain.Optional[string]               `json:"description"`
	Status      domain.Optional[domain.ProjectStatus] `json:"status"`
	StartDate   domain.Optional[domain.Date]          `json:"start_date"`
	EndDate     domain.Optional[domain.Date]          `json:"end_date"`
}

type ProjectService struct {
	store *repo.Store
	lc    *Lifecycle
	log   *zap.Logger
}

func NewProjectService(store *repo.Store, lc *Lifecycle, log *zap.Logger) *ProjectService {
	return &ProjectService{store: store, lc: lc, log: log}
}

func (s *ProjectService) apply(p *domain.Project, in ProjectInput) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	in.Status.ApplyTo(&p.Status)
	in.Description.Apply(&p.Description)
	in.StartDate.Apply(&p.StartDate)
	in.EndDate.Apply(&p.EndDate)
}

// List 按 updated_at 倒序，带 issues_count
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	ps, err := s.store.Projects.List(ctx)
	if err != nil {
		return nil, domain.Internal("Failed to fetch projects", err)
	}
	return ps, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*domain.Project, error) {
	p, err := s.store.Projects.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("Failed to fetch project", err)
	}
	if p == nil {
		return nil, domain.NotFound("Project")
	}
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	p := &domain.Project{Status: domain.ProjectActive}
	s.apply(p, in)
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := s.store.Projects.Create(ctx, p); err != nil {
		return nil, domain.Internal("Failed to create project", err)
	}
	s.log.Info("project created", zap.Uint("id", p.ID))
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, in ProjectInput) (*domain.Project, error) {
	var out *domain.Project
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		p, err := tx.Projects.FindByID(ctx, id)
		if err != nil {
			return domain.Internal("Failed to update project", err)
		}
		if p == nil {
			return domain.NotFound("Project")
		}
		s.apply(p, in)
		if err := domain.Validate(p); err != nil {
			return err
		}
		if err := tx.Projects.Update(ctx, p); err != nil {
			return domain.Internal("Failed to update project", err)
		}
		out = p
		return nil
	})
	return out, err
}

// Delete 级联删除 issues 以及它们的 comments
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		_, err := s.lc.HardDelete(ctx, tx, domain.EntityProject, id)
		return err
	})
	if err == nil {
		s.log.Info("project deleted", zap.Uint("id", id))
	}
	return err
}
