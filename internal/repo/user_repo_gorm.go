package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issue-tracker/internal/domain"
)

var ErrDuplicateEmail = errors.New("duplicate email")

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
	if err != nil && isDupKey(err) {
		return ErrDuplicateEmail
	}
	return err
}

// FindByID 找不到返回 (nil, nil)
func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindWithIssues 预加载 assigned/reported issues（只取 id/title/status 所需列）
func (r *UserRepo) FindWithIssues(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	shallow := func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "title", "status", "assigned_to_id", "reporter_id").Order("id")
	}
	err := r.db.WithContext(ctx).
		Preload("AssignedIssues", shallow).
		Preload("ReportedIssues", shallow).
		First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListActive is_active=true，按 name 升序
func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Order("id ASC").Find(&users).Error
	return users, err
}

// ListAll 包含停用账号（管理端）
func (r *UserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
	if err != nil && isDupKey(err) {
		return ErrDuplicateEmail
	}
	return err
}

// SetActive 软删除 / 恢复
func (r *UserRepo) SetActive(ctx context.Context, id uint, active bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_active", active)
	return res.RowsAffected, res.Error
}

// SetPassword 只写 hash 列
func (r *UserRepo) SetPassword(ctx context.Context, id uint, hash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("password", hash)
	return res.RowsAffected, res.Error
}
