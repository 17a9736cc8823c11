package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/models"
	"github.com/noah-isme/cover-planner-api/pkg/clock"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
)

// CoverAbsenceStore looks up the absence under resolution.
type CoverAbsenceStore interface {
	FindByID(ctx context.Context, id string) (*models.Absence, error)
}

// CoverSlotStore is the schedule surface the resolver reads.
type CoverSlotStore interface {
	List(ctx context.Context, filter models.SlotFilter) ([]models.ScheduleSlot, error)
	TeacherIDsWithSubjectPrefix(ctx context.Context, prefix string) ([]string, error)
}

// CoverTeacherStore returns the roster in its stable listing order, which the
// availability lists inherit.
type CoverTeacherStore interface {
	ListAll(ctx context.Context) ([]models.Teacher, error)
}

// CoverService answers "who can cover teacher T on date D". Results are
// computed from current schedule state on every call.
type CoverService struct {
	absences CoverAbsenceStore
	slots    CoverSlotStore
	teachers CoverTeacherStore
	logger   *zap.Logger
}

// NewCoverService constructs a CoverService.
func NewCoverService(absences CoverAbsenceStore, slots CoverSlotStore, teachers CoverTeacherStore, logger *zap.Logger) *CoverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoverService{absences: absences, slots: slots, teachers: teachers, logger: logger}
}

// Resolve computes per-slot availability for the absent teacher's day. A
// teacher is available for a slot when they have no slot of their own
// overlapping it, they teach no "KH-" subject anywhere in their schedule, and
// they are not the absent teacher. An absence falling on a day the teacher has
// no slots yields an empty slot list, not an error.
func (s *CoverService) Resolve(ctx context.Context, absenceID string) (*models.CoverResult, error) {
	absence, err := s.absences.FindByID(ctx, absenceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "absence not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load absence")
	}

	dayOfWeek := absence.Date.Weekday().String()
	result := &models.CoverResult{
		AbsentTeacher: absence.TeacherName,
		Date:          absence.Date,
		DayOfWeek:     dayOfWeek,
		Slots:         []models.SlotAvailability{},
	}

	absentSlots, err := s.slots.List(ctx, models.SlotFilter{TeacherID: absence.TeacherID, DayOfWeek: dayOfWeek})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load absent teacher slots")
	}
	if len(absentSlots) == 0 {
		return result, nil
	}
	sortChronologically(absentSlots)
	for _, slot := range absentSlots {
		if !clock.Parse(slot.StartTime).Parsed || !clock.Parse(slot.EndTime).Parsed {
			s.logger.Debug("slot time label did not parse, comparing as midnight",
				zap.String("teacher_id", slot.TeacherID),
				zap.String("start_time", slot.StartTime),
				zap.String("end_time", slot.EndTime),
			)
		}
	}

	daySlots, err := s.slots.List(ctx, models.SlotFilter{DayOfWeek: dayOfWeek})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load day slots")
	}
	slotsByTeacher := make(map[string][]models.ScheduleSlot)
	for _, slot := range daySlots {
		slotsByTeacher[slot.TeacherID] = append(slotsByTeacher[slot.TeacherID], slot)
	}

	barred, err := s.slots.TeacherIDsWithSubjectPrefix(ctx, models.NonCoveringSubjectPrefix)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load barred teachers")
	}
	barredSet := make(map[string]struct{}, len(barred))
	for _, id := range barred {
		barredSet[id] = struct{}{}
	}

	roster, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load roster")
	}

	for _, slot := range absentSlots {
		available := make([]models.AvailableTeacher, 0, len(roster))
		for _, candidate := range roster {
			if candidate.ID == absence.TeacherID {
				continue
			}
			if _, ok := barredSet[candidate.ID]; ok {
				continue
			}
			if teacherBusyDuring(slotsByTeacher[candidate.ID], slot) {
				continue
			}
			available = append(available, models.AvailableTeacher{
				ID:    candidate.ID,
				Name:  candidate.DisplayName,
				Email: candidate.Email,
			})
		}

		result.Slots = append(result.Slots, models.SlotAvailability{
			Time:              clock.RangeLabel(slot.StartTime, slot.EndTime),
			DayOfWeek:         slot.DayOfWeek,
			StartTime:         slot.StartTime,
			EndTime:           slot.EndTime,
			Subject:           slot.Subject,
			ClassRoom:         slot.ClassRoom,
			AvailableTeachers: available,
		})
	}

	return result, nil
}

func teacherBusyDuring(owned []models.ScheduleSlot, target models.ScheduleSlot) bool {
	for _, slot := range owned {
		if clock.RangesOverlap(slot.StartTime, slot.EndTime, target.StartTime, target.EndTime) {
			return true
		}
	}
	return false
}

func sortChronologically(slots []models.ScheduleSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := clock.Minutes(slots[i].StartTime), clock.Minutes(slots[j].StartTime)
		if a != b {
			return a < b
		}
		return clock.Minutes(slots[i].EndTime) < clock.Minutes(slots[j].EndTime)
	})
}
