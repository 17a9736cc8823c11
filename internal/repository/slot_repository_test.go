package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cover-planner-api/internal/models"
)

func TestSlotRepositoryReplaceForTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_slots WHERE teacher_id = $1")).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO schedule_slots").
		WithArgs(sqlmock.AnyArg(), "t1", "Monday", "8:00 AM", "8:50 AM", "Math", "Grade 4 - Main Campus", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.ReplaceForTeacher(context.Background(), "t1", []models.ScheduleSlot{
		{DayOfWeek: "Monday", StartTime: "8:00 AM", EndTime: "8:50 AM", Subject: "Math", ClassRoom: "Grade 4 - Main Campus"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_slots WHERE teacher_id = $1")).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO schedule_slots").
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	err := repo.ReplaceForTeacher(context.Background(), "t1", []models.ScheduleSlot{
		{DayOfWeek: "Monday", StartTime: "8:00 AM", EndTime: "8:50 AM", Subject: "Math"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryListByTeacherAndDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "day_of_week", "start_time", "end_time", "subject", "class_room", "created_at"}).
		AddRow("s1", "t1", "Monday", "8:00 AM", "8:50 AM", "Math", "Grade 4", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, teacher_id, day_of_week, start_time, end_time, subject, class_room, created_at FROM schedule_slots WHERE 1=1 AND teacher_id = $1 AND day_of_week = $2 ORDER BY created_at ASC, id ASC")).
		WithArgs("t1", "Monday").
		WillReturnRows(rows)

	slots, err := repo.List(context.Background(), models.SlotFilter{TeacherID: "t1", DayOfWeek: "Monday"})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Math", slots[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryTeacherIDsWithSubjectPrefix(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSlotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT teacher_id FROM schedule_slots WHERE subject LIKE $1")).
		WithArgs("KH-%").
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id"}).AddRow("t2").AddRow("t5"))

	ids, err := repo.TeacherIDsWithSubjectPrefix(context.Background(), "KH-")
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t5"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
