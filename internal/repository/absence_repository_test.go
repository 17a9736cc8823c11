package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cover-planner-api/internal/models"
)

func TestAbsenceRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	mock.ExpectExec("INSERT INTO absences").
		WithArgs(sqlmock.AnyArg(), "t1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	absence := &models.Absence{TeacherID: "t1", Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(context.Background(), absence))
	assert.NotEmpty(t, absence.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "teacher_name", "date", "reason", "created_at"}).
		AddRow("a1", "t1", "Ms. Jane Doe", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), nil, time.Now())
	mock.ExpectQuery("SELECT a.id, a.teacher_id, t.display_name AS teacher_name").
		WithArgs("a1").
		WillReturnRows(rows)

	absence, err := repo.FindByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Ms. Jane Doe", absence.TeacherName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepositoryListRecent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "teacher_name", "date", "reason", "created_at"}).
		AddRow("a2", "t2", "Mr. Dara Sok", time.Now(), nil, time.Now()).
		AddRow("a1", "t1", "Ms. Jane Doe", time.Now().Add(-24*time.Hour), nil, time.Now())
	mock.ExpectQuery("SELECT a.id, a.teacher_id, t.display_name AS teacher_name").
		WithArgs(5).
		WillReturnRows(rows)

	absences, err := repo.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, absences, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
