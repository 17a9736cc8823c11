package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cover-planner-api/internal/models"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
)

type mockTeacherFinder struct {
	teachers map[string]*models.Teacher
}

func (m *mockTeacherFinder) FindByID(_ context.Context, id string) (*models.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return teacher, nil
}

func (m *mockTeacherFinder) FindByNameKey(_ context.Context, nameKey string) (*models.Teacher, error) {
	for _, teacher := range m.teachers {
		if teacher.NameKey == nameKey {
			return teacher, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockAbsenceWriter struct {
	created []models.Absence
}

func (m *mockAbsenceWriter) Create(_ context.Context, absence *models.Absence) error {
	if absence.ID == "" {
		absence.ID = uuid.NewString()
	}
	m.created = append(m.created, *absence)
	return nil
}

func (m *mockAbsenceWriter) FindByID(_ context.Context, id string) (*models.Absence, error) {
	for i := range m.created {
		if m.created[i].ID == id {
			return &m.created[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAbsenceWriter) ListRecent(_ context.Context, limit int) ([]models.Absence, error) {
	if limit > 0 && limit < len(m.created) {
		return m.created[:limit], nil
	}
	return m.created, nil
}

func newAbsenceService(store *mockAbsenceWriter) *AbsenceService {
	teachers := &mockTeacherFinder{teachers: map[string]*models.Teacher{
		"t1": {ID: "t1", DisplayName: "Ms. Jane Doe", NameKey: "ms. jane doe"},
		"t2": {ID: "t2", DisplayName: "Mr. Dara Sok", NameKey: "mr. dara sok"},
	}}
	return NewAbsenceService(store, teachers, nil)
}

func TestAbsenceCreate(t *testing.T) {
	store := &mockAbsenceWriter{}
	svc := newAbsenceService(store)

	absence, err := svc.Create(context.Background(), CreateAbsenceInput{TeacherID: "t1", Date: "2024-03-04"})
	require.NoError(t, err)
	assert.Equal(t, "t1", absence.TeacherID)
	assert.Equal(t, "Ms. Jane Doe", absence.TeacherName)
	assert.Equal(t, "Monday", absence.Date.Weekday().String())
	require.Len(t, store.created, 1)
}

func TestAbsenceCreateRejectsBadDate(t *testing.T) {
	svc := newAbsenceService(&mockAbsenceWriter{})

	_, err := svc.Create(context.Background(), CreateAbsenceInput{TeacherID: "t1", Date: "04/03/2024"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAbsenceCreateUnknownTeacher(t *testing.T) {
	svc := newAbsenceService(&mockAbsenceWriter{})

	_, err := svc.Create(context.Background(), CreateAbsenceInput{TeacherID: "ghost", Date: "2024-03-04"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAbsenceCreateBatchPartialSuccess(t *testing.T) {
	store := &mockAbsenceWriter{}
	svc := newAbsenceService(store)

	// The second name drifts in casing and spacing but still resolves via the
	// normalized key; the third name is unknown and must be skipped without
	// aborting the batch.
	result, err := svc.CreateBatch(context.Background(), BatchAbsenceInput{
		Date:         "2024-03-04",
		TeacherNames: []string{"Ms. Jane Doe", "mr.  dara  sok ", "Ms. Nobody"},
	})
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, "Ms. Jane Doe", result.Created[0].TeacherName)
	assert.Equal(t, "Mr. Dara Sok", result.Created[1].TeacherName)
	assert.Equal(t, []string{"Ms. Nobody"}, result.Skipped)
	require.Len(t, store.created, 2)
}

func TestAbsenceCreateBatchEmpty(t *testing.T) {
	svc := newAbsenceService(&mockAbsenceWriter{})

	_, err := svc.CreateBatch(context.Background(), BatchAbsenceInput{Date: "2024-03-04"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
