package repo

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"issue-tracker/internal/domain"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return gormDB, mock
}

func TestProjectRepo_FindByID_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	r := NewProjectRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT projects.*, (SELECT COUNT(*) FROM issues WHERE issues.project_id = projects.id) AS issues_count FROM "projects" WHERE projects.id = $1 ORDER BY "projects"."id" LIMIT $2`)).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "issues_count"}).
			AddRow(7, "Redesign", "active", 3))

	p, err := r.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Redesign", p.Name)
	assert.EqualValues(t, 3, p.IssuesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteIDs_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE id IN ($1,$2)`)).
		WithArgs(4, 5).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := s.DeleteIDs(context.Background(), domain.EntityComment, []uint{4, 5})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Exists_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE id = $1`)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := s.Exists(context.Background(), domain.EntityUser, 9)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
