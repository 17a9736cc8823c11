package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/models"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
)

// TeacherStore is the roster surface the teacher endpoints need.
type TeacherStore interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// TeacherSlotStore reads a teacher's stored slots.
type TeacherSlotStore interface {
	List(ctx context.Context, filter models.SlotFilter) ([]models.ScheduleSlot, error)
}

// TeacherService serves roster listing and per-teacher schedules.
type TeacherService struct {
	teachers TeacherStore
	slots    TeacherSlotStore
	logger   *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(teachers TeacherStore, slots TeacherSlotStore, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{teachers: teachers, slots: slots, logger: logger}
}

// List returns roster members matching the filter with pagination metadata.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	teachers, total, err := s.teachers.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list teachers")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return teachers, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get fetches one roster member.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load teacher")
	}
	return teacher, nil
}

// WeeklySchedule groups one teacher's slots by weekday, each day sorted
// chronologically. Every school day appears in the map even when empty.
func (s *TeacherService) WeeklySchedule(ctx context.Context, id string) (*models.WeeklySchedule, error) {
	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := s.slots.List(ctx, models.SlotFilter{TeacherID: teacher.ID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load teacher slots")
	}

	schedule := &models.WeeklySchedule{
		TeacherName: teacher.DisplayName,
		Days:        make(map[string][]models.ScheduleSlot, len(models.Weekdays)),
	}
	for _, day := range models.Weekdays {
		schedule.Days[day] = []models.ScheduleSlot{}
	}
	for _, slot := range slots {
		schedule.Days[slot.DayOfWeek] = append(schedule.Days[slot.DayOfWeek], slot)
	}
	for _, day := range models.Weekdays {
		sortChronologically(schedule.Days[day])
	}
	return schedule, nil
}
