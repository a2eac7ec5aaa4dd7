package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issue-tracker/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// FindByID 附带作者；找不到返回 (nil, nil)
func (r *CommentRepo) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByIssue 按时间正序
func (r *CommentRepo) ListByIssue(ctx context.Context, issueID uint) ([]domain.Comment, error) {
	var items []domain.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("issue_id = ?", issueID).
		Order("created_at ASC").Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *CommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}
