package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issue-tracker/internal/domain"
)

type IssueRepo struct{ db *gorm.DB }

func NewIssueRepo(db *gorm.DB) *IssueRepo { return &IssueRepo{db: db} }

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("AssignedTo").Preload("Reporter").Preload("Project")
}

func withComments(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.created_at ASC").Order("comments.id ASC")
	}).Preload("Comments.User")
}

func (r *IssueRepo) Create(ctx context.Context, i *domain.Issue) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(i).Error
}

// FindInProject issue 必须属于该 project；找不到返回 (nil, nil)
func (r *IssueRepo) FindInProject(ctx context.Context, projectID, id uint) (*domain.Issue, error) {
	return r.find(ctx, r.db, projectID, id)
}

// FindDetail 附带 assigned_to / reporter / project，可选 comments（含作者）
func (r *IssueRepo) FindDetail(ctx context.Context, projectID, id uint, comments bool) (*domain.Issue, error) {
	q := withAssociations(r.db)
	if comments {
		q = withComments(q)
	}
	return r.find(ctx, q, projectID, id)
}

func (r *IssueRepo) find(ctx context.Context, q *gorm.DB, projectID, id uint) (*domain.Issue, error) {
	var i domain.Issue
	err := q.WithContext(ctx).First(&i, "id = ? AND project_id = ?", id, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ListByProject 按创建时间倒序，附带关联
func (r *IssueRepo) ListByProject(ctx context.Context, projectID uint) ([]domain.Issue, error) {
	var items []domain.Issue
	err := withAssociations(r.db).WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *IssueRepo) Update(ctx context.Context, i *domain.Issue) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(i).Error
}
