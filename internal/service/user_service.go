package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"issue-tracker/internal/domain"
	"issue-tracker/internal/repo"
	"issue-tracker/pkg/utils"
)

// UserInput 可写字段：name / email / avatar_url
type UserInput struct {
	Name      *string                 `json:"name"`
	Email     *string                 `json:"email"`
	AvatarURL domain.Optional[string] `json:"avatar_url"`
}

type UserService struct {
	store *repo.Store
	lc    *Lifecycle
	log   *zap.Logger
}

func NewUserService(store *repo.Store, lc *Lifecycle, log *zap.Logger) *UserService {
	return &UserService{store: store, lc: lc, log: log}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *UserService) apply(u *domain.User, in UserInput) {
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = normalizeEmail(*in.Email)
	}
	in.AvatarURL.Apply(&u.AvatarURL)
}

// ListActive 只返回 is_active=true
func (s *UserService) ListActive(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.Users.ListActive(ctx)
	if err != nil {
		return nil, domain.Internal("Failed to fetch users", err)
	}
	return users, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.Users.ListAll(ctx)
	if err != nil {
		return nil, domain.Internal("Failed to fetch users", err)
	}
	return users, nil
}

// Get 停用账号同样可以按 id 取到
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.store.Users.FindWithIssues(ctx, id)
	if err != nil {
		return nil, domain.Internal("Failed to fetch user", err)
	}
	if u == nil {
		return nil, domain.NotFound("User")
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	u := &domain.User{IsActive: true}
	s.apply(u, in)
	if err := domain.Validate(u); err != nil {
		return nil, err
	}
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		if err := s.ensureEmailFree(ctx, tx, u.Email, 0); err != nil {
			return err
		}
		return s.wrapWrite(tx.Users.Create(ctx, u), "Failed to create user")
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.Uint("id", u.ID))
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (*domain.User, error) {
	var out *domain.User
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		u, err := tx.Users.FindByID(ctx, id)
		if err != nil {
			return domain.Internal("Failed to update user", err)
		}
		if u == nil {
			return domain.NotFound("User")
		}
		s.apply(u, in)
		if err := domain.Validate(u); err != nil {
			return err
		}
		if in.Email != nil {
			if err := s.ensureEmailFree(ctx, tx, u.Email, u.ID); err != nil {
				return err
			}
		}
		if err := s.wrapWrite(tx.Users.Update(ctx, u), "Failed to update user"); err != nil {
			return err
		}
		out = u
		return nil
	})
	return out, err
}

// Deactivate 公开 API 的删除：只置 is_active=false，不触发任何级联
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, false)
}

func (s *UserService) Reactivate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, true)
}

func (s *UserService) setActive(ctx context.Context, id uint, active bool) error {
	u, err := s.store.Users.FindByID(ctx, id)
	if err != nil {
		return domain.Internal("Failed to deactivate user", err)
	}
	if u == nil {
		return domain.NotFound("User")
	}
	if _, err := s.store.Users.SetActive(ctx, id, active); err != nil {
		return domain.Internal("Failed to deactivate user", err)
	}
	s.log.Info("user active flag changed", zap.Uint("id", id), zap.Bool("active", active))
	return nil
}

// SetPassword 保存 bcrypt hash；明文不落库也不出现在任何视图里
func (s *UserService) SetPassword(ctx context.Context, id uint, plain string) error {
	if len(plain) < 8 {
		return domain.ValidationError("Password is too short (minimum is 8 characters)")
	}
	hash := utils.HashPassword(plain)
	if hash == "" {
		return domain.ValidationError("Password is too long (maximum is 72 characters)")
	}
	n, err := s.store.Users.SetPassword(ctx, id, hash)
	if err != nil {
		return domain.Internal("Failed to set password", err)
	}
	if n == 0 {
		return domain.NotFound("User")
	}
	return nil
}

// Purge 硬删除（管理端）：reported issues 存在则拒绝，assigned 置空，评论级联删除
func (s *UserService) Purge(ctx context.Context, id uint) (*PurgeResult, error) {
	var res *PurgeResult
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		r, err := s.lc.HardDelete(ctx, tx, domain.EntityUser, id)
		res = r
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user purged", zap.Uint("id", id))
	return res, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, tx *repo.Store, email string, selfID uint) error {
	other, err := tx.Users.FindByEmail(ctx, email)
	if err != nil {
		return domain.Internal("check email", err)
	}
	if other != nil && other.ID != selfID {
		return domain.Conflict("Email already exists")
	}
	return nil
}

func (s *UserService) wrapWrite(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrDuplicateEmail):
		return domain.Conflict("Email already exists")
	default:
		return domain.Internal(msg, err)
	}
}
