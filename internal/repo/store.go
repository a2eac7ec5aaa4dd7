package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"issue-tracker/internal/domain"
)

// Store 聚合各实体 repo；Transaction 内的所有读写都走同一个 tx
type Store struct {
	db       *gorm.DB
	Users    *UserRepo
	Projects *ProjectRepo
	Issues   *IssueRepo
	Comments *CommentRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepo(db),
		Projects: NewProjectRepo(db),
		Issues:   NewIssueRepo(db),
		Comments: NewCommentRepo(db),
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Models 需要迁移的模型
func Models() []any {
	return []any{&domain.User{}, &domain.Project{}, &domain.Issue{}, &domain.Comment{}}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }

// Exists 只看行是否存在，不区分 is_active
func (s *Store) Exists(ctx context.Context, e domain.Entity, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Table(e.Table()).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// ---------- 按外键批量操作（供级联删除使用） ----------

func (s *Store) CountBy(ctx context.Context, e domain.Entity, column string, ids []uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Table(e.Table()).Where(column+" IN ?", ids).Count(&n).Error
	return n, err
}

func (s *Store) IDsBy(ctx context.Context, e domain.Entity, column string, ids []uint) ([]uint, error) {
	var out []uint
	err := s.db.WithContext(ctx).Table(e.Table()).Where(column+" IN ?", ids).Pluck("id", &out).Error
	return out, err
}

func (s *Store) ClearColumn(ctx context.Context, e domain.Entity, column string, ids []uint) (int64, error) {
	res := s.db.WithContext(ctx).Table(e.Table()).Where(column+" IN ?", ids).Update(column, nil)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteIDs(ctx context.Context, e domain.Entity, ids []uint) (int64, error) {
	res := s.db.WithContext(ctx).Exec("DELETE FROM "+e.Table()+" WHERE id IN ?", ids)
	return res.RowsAffected, res.Error
}

// TableCounts 每张表的行数（db-info）
func (s *Store) TableCounts(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, 4)
	for _, e := range []domain.Entity{domain.EntityUser, domain.EntityProject, domain.EntityIssue, domain.EntityComment} {
		var n int64
		if err := s.db.WithContext(ctx).Table(e.Table()).Count(&n).Error; err != nil {
			return nil, err
		}
		out[e.Table()] = n
	}
	return out, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey（需要 TranslateError），直接看驱动错误文本
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
