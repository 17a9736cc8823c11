package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cover-planner-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "display_name", "name_key", "email", "created_at", "updated_at"})
}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := teacherRows().
		AddRow("t1", "Ms. Jane Doe", "ms. jane doe", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, display_name, name_key, email, created_at, updated_at FROM teachers WHERE 1=1 ORDER BY created_at ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.TeacherFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByNameKey(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, display_name, name_key, email, created_at, updated_at FROM teachers WHERE name_key = $1")).
		WithArgs("ms. jane doe").
		WillReturnRows(teacherRows().AddRow("t1", "Ms. Jane Doe", "ms. jane doe", nil, time.Now(), time.Now()))

	teacher, err := repo.FindByNameKey(context.Background(), "ms. jane doe")
	require.NoError(t, err)
	assert.Equal(t, "Ms. Jane Doe", teacher.DisplayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), "Ms. Jane Doe", "ms. jane doe", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(teacherRows().AddRow("existing-id", "Ms. Jane Doe", "ms. jane doe", nil, time.Now(), time.Now()))

	teacher := &models.Teacher{DisplayName: "Ms. Jane Doe", NameKey: "ms. jane doe"}
	require.NoError(t, repo.Upsert(context.Background(), teacher))

	// The stored identity wins over the freshly generated one.
	assert.Equal(t, "existing-id", teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
