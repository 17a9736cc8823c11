package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cover-planner-api/internal/models"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
)

type mockResolver struct {
	result *models.CoverResult
	err    error
}

func (m *mockResolver) Resolve(_ context.Context, _ string) (*models.CoverResult, error) {
	return m.result, m.err
}

func coverFixture() *models.CoverResult {
	return &models.CoverResult{
		AbsentTeacher: "Ms. Jane Doe",
		Date:          time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		DayOfWeek:     "Monday",
		Slots: []models.SlotAvailability{
			{
				Time:      "8:00 AM - 8:50 AM",
				Subject:   "Math",
				ClassRoom: "Grade 4 - Main Campus",
				AvailableTeachers: []models.AvailableTeacher{
					{ID: "b", Name: "Mr. Dara Sok"},
					{ID: "c", Name: "Ms. Sreyneang Chan"},
				},
			},
			{
				Time:              "9:00 AM - 9:50 AM",
				Subject:           "Science",
				AvailableTeachers: []models.AvailableTeacher{},
			},
		},
	}
}

func TestExportCoverSheetCSV(t *testing.T) {
	svc := NewExportService(&mockResolver{result: coverFixture()}, nil)

	file, err := svc.CoverSheet(context.Background(), "a1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "cover-sheet-2024-03-04.csv", file.Filename)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Time,Subject,Class,Available Teachers", lines[0])
	assert.Contains(t, lines[1], "\"Mr. Dara Sok, Ms. Sreyneang Chan\"")
	assert.Contains(t, lines[2], "none")
}

func TestExportCoverSheetPDF(t *testing.T) {
	svc := NewExportService(&mockResolver{result: coverFixture()}, nil)

	file, err := svc.CoverSheet(context.Background(), "a1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "cover-sheet-2024-03-04.pdf", file.Filename)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestExportCoverSheetDefaultsToCSV(t *testing.T) {
	svc := NewExportService(&mockResolver{result: coverFixture()}, nil)

	file, err := svc.CoverSheet(context.Background(), "a1", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
}

func TestExportCoverSheetRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&mockResolver{result: coverFixture()}, nil)

	_, err := svc.CoverSheet(context.Background(), "a1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportCoverSheetPropagatesResolveError(t *testing.T) {
	svc := NewExportService(&mockResolver{err: appErrors.Clone(appErrors.ErrNotFound, "absence not found")}, nil)

	_, err := svc.CoverSheet(context.Background(), "a1", "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
