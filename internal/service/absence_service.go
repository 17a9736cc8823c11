package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/ingest"
	"github.com/noah-isme/cover-planner-api/internal/models"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
)

const absenceDateLayout = "2006-01-02"

// AbsenceTeacherStore resolves absent teachers by ID or normalized name.
type AbsenceTeacherStore interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	FindByNameKey(ctx context.Context, nameKey string) (*models.Teacher, error)
}

// AbsenceStore persists absence records.
type AbsenceStore interface {
	Create(ctx context.Context, absence *models.Absence) error
	FindByID(ctx context.Context, id string) (*models.Absence, error)
	ListRecent(ctx context.Context, limit int) ([]models.Absence, error)
}

// CreateAbsenceInput is the payload for recording one absence.
type CreateAbsenceInput struct {
	TeacherID string  `json:"teacher_id" validate:"required"`
	Date      string  `json:"date" validate:"required"`
	Reason    *string `json:"reason" validate:"omitempty,max=500"`
}

// BatchAbsenceInput records one date's absences for several teachers at once,
// addressed by the display names staff actually type.
type BatchAbsenceInput struct {
	Date         string   `json:"date" validate:"required"`
	Reason       *string  `json:"reason" validate:"omitempty,max=500"`
	TeacherNames []string `json:"teacher_names" validate:"required,min=1,dive,required"`
}

// BatchResult reports partial success of a batch submission. Skipped holds
// the names that did not resolve to a roster member.
type BatchResult struct {
	Created []models.Absence `json:"created"`
	Skipped []string         `json:"skipped,omitempty"`
}

// AbsenceService records and reads teacher absences.
type AbsenceService struct {
	absences AbsenceStore
	teachers AbsenceTeacherStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAbsenceService constructs an AbsenceService.
func NewAbsenceService(absences AbsenceStore, teachers AbsenceTeacherStore, logger *zap.Logger) *AbsenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AbsenceService{
		absences: absences,
		teachers: teachers,
		validate: validator.New(),
		logger:   logger,
	}
}

// Create validates and records a single absence.
func (s *AbsenceService) Create(ctx context.Context, input CreateAbsenceInput) (*models.Absence, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence payload")
	}

	date, err := time.Parse(absenceDateLayout, input.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}

	teacher, err := s.teachers.FindByID(ctx, input.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load teacher")
	}

	absence := &models.Absence{
		TeacherID:   teacher.ID,
		TeacherName: teacher.DisplayName,
		Date:        date,
		Reason:      input.Reason,
	}
	if err := s.absences.Create(ctx, absence); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "record absence")
	}

	s.logger.Info("absence recorded",
		zap.String("absence_id", absence.ID),
		zap.String("teacher_id", teacher.ID),
		zap.String("date", input.Date),
	)
	return absence, nil
}

// CreateBatch resolves each name against the roster and records an absence
// per match. Names that resolve to nothing are reported in Skipped while the
// rest still land; partial success is the norm, never silently full success.
func (s *AbsenceService) CreateBatch(ctx context.Context, input BatchAbsenceInput) (*BatchResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}
	date, err := time.Parse(absenceDateLayout, input.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}

	result := &BatchResult{Created: []models.Absence{}}
	for _, name := range input.TeacherNames {
		teacher, err := s.teachers.FindByNameKey(ctx, ingest.NormalizeName(name))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				result.Skipped = append(result.Skipped, name)
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve teacher name")
		}

		absence := &models.Absence{
			TeacherID:   teacher.ID,
			TeacherName: teacher.DisplayName,
			Date:        date,
			Reason:      input.Reason,
		}
		if err := s.absences.Create(ctx, absence); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "record absence")
		}
		result.Created = append(result.Created, *absence)
	}

	s.logger.Info("absence batch recorded",
		zap.String("date", input.Date),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// List returns the most recently recorded absences, newest first.
func (s *AbsenceService) List(ctx context.Context, limit int) ([]models.Absence, error) {
	absences, err := s.absences.ListRecent(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list absences")
	}
	if absences == nil {
		absences = []models.Absence{}
	}
	return absences, nil
}

// Get fetches one absence with the teacher's name resolved.
func (s *AbsenceService) Get(ctx context.Context, id string) (*models.Absence, error) {
	absence, err := s.absences.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "absence not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load absence")
	}
	return absence, nil
}
