package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issue-tracker/internal/domain"
)

const issuesCountSelect = "projects.*, (SELECT COUNT(*) FROM issues WHERE issues.project_id = projects.id) AS issues_count"

type ProjectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// FindByID 附带 issues_count；找不到返回 (nil, nil)
func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).Select(issuesCountSelect).First(&p, "projects.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List 按最近更新倒序
func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	var ps []domain.Project
	err := r.db.WithContext(ctx).Select(issuesCountSelect).
		Order("projects.updated_at DESC").Order("projects.id DESC").
		Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}
