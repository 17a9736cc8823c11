package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/ingest"
	"github.com/noah-isme/cover-planner-api/internal/models"
	"github.com/noah-isme/cover-planner-api/pkg/jobs"
)

// ScheduleTeacherStore is the roster surface the import needs.
type ScheduleTeacherStore interface {
	Upsert(ctx context.Context, teacher *models.Teacher) error
}

// ScheduleSlotStore replaces a teacher's stored slots atomically.
type ScheduleSlotStore interface {
	ReplaceForTeacher(ctx context.Context, teacherID string, slots []models.ScheduleSlot) error
	List(ctx context.Context, filter models.SlotFilter) ([]models.ScheduleSlot, error)
}

// CacheInvalidator drops cached aggregates after writes.
type CacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// ScheduleService turns uploaded workbooks into stored schedules.
type ScheduleService struct {
	teachers ScheduleTeacherStore
	slots    ScheduleSlotStore
	engine   *ingest.Engine
	pool     *jobs.Pool
	cache    CacheInvalidator
	logger   *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(teachers ScheduleTeacherStore, slots ScheduleSlotStore, engine *ingest.Engine, pool *jobs.Pool, cache CacheInvalidator, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{teachers: teachers, slots: slots, engine: engine, pool: pool, cache: cache, logger: logger}
}

// Import decodes the workbook, parses every sheet and replaces each discovered
// teacher's schedule. Teachers import independently: one failing upsert is
// reported in the outcome list without aborting the rest.
func (s *ScheduleService) Import(ctx context.Context, workbook io.Reader) (*models.ImportReport, error) {
	sheets, err := ingest.ReadWorkbook(workbook)
	if err != nil {
		return nil, err
	}

	parsed := s.engine.Parse(sheets)
	report := &models.ImportReport{
		SkippedSheets: parsed.SkippedSheets,
		SkippedRows:   parsed.SkippedRows,
		PerTeacher:    make([]models.TeacherImportOutcome, len(parsed.Schedules)),
	}

	tasks := make([]jobs.Task, len(parsed.Schedules))
	for i, schedule := range parsed.Schedules {
		i, schedule := i, schedule
		report.PerTeacher[i] = models.TeacherImportOutcome{
			TeacherName: schedule.TeacherName,
			SlotCount:   len(schedule.Slots),
		}
		tasks[i] = jobs.Task{
			ID: schedule.TeacherName,
			Run: func(ctx context.Context) error {
				return s.importTeacher(ctx, schedule)
			},
		}
	}

	for i, result := range s.pool.Run(ctx, tasks) {
		if result.Err != nil {
			report.PerTeacher[i].Error = result.Err.Error()
			continue
		}
		report.TeachersImported++
		report.SlotsImported += report.PerTeacher[i].SlotCount
	}

	if report.TeachersImported > 0 && s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, dashboardCachePattern); err != nil {
			s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("workbook imported",
		zap.Int("teachers", report.TeachersImported),
		zap.Int("slots", report.SlotsImported),
		zap.Int("skipped_sheets", len(report.SkippedSheets)),
		zap.Int("skipped_rows", report.SkippedRows),
	)
	return report, nil
}

func (s *ScheduleService) importTeacher(ctx context.Context, schedule models.TeacherSchedule) error {
	teacher := &models.Teacher{
		DisplayName: schedule.TeacherName,
		NameKey:     ingest.NormalizeName(schedule.TeacherName),
	}
	if err := s.teachers.Upsert(ctx, teacher); err != nil {
		return err
	}

	slots := make([]models.ScheduleSlot, len(schedule.Slots))
	for i, parsed := range schedule.Slots {
		slots[i] = models.ScheduleSlot{
			TeacherID: teacher.ID,
			DayOfWeek: parsed.DayOfWeek,
			StartTime: parsed.StartTime,
			EndTime:   parsed.EndTime,
			Subject:   parsed.Subject,
			ClassRoom: parsed.ClassRoom,
		}
	}
	return s.slots.ReplaceForTeacher(ctx, teacher.ID, slots)
}
