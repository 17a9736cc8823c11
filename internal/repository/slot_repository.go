package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cover-planner-api/internal/models"
)

// SlotRepository manages persistence for schedule slots.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository constructs a SlotRepository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// ReplaceForTeacher wipes a teacher's slots and inserts the new set inside
// one transaction. Re-uploads therefore follow last-upload-wins semantics and
// a failed insert never leaves the teacher half-replaced.
func (r *SlotRepository) ReplaceForTeacher(ctx context.Context, teacherID string, slots []models.ScheduleSlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace slots: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM schedule_slots WHERE teacher_id = $1`, teacherID); err != nil {
		return fmt.Errorf("delete slots for teacher: %w", err)
	}

	now := time.Now().UTC()
	const query = `INSERT INTO schedule_slots (id, teacher_id, day_of_week, start_time, end_time, subject, class_room, created_at)
		VALUES (:id, :teacher_id, :day_of_week, :start_time, :end_time, :subject, :class_room, :created_at)`
	for i := range slots {
		slot := &slots[i]
		slot.TeacherID = teacherID
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		if _, err = sqlx.NamedExecContext(ctx, tx, query, slot); err != nil {
			return fmt.Errorf("insert slot: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace slots: %w", err)
	}
	return nil
}

// List returns slots matching the filter in insertion order. Chronological
// ordering is the caller's concern since start times are clock labels, not
// sortable SQL values.
func (r *SlotRepository) List(ctx context.Context, filter models.SlotFilter) ([]models.ScheduleSlot, error) {
	query := "SELECT id, teacher_id, day_of_week, start_time, end_time, subject, class_room, created_at FROM schedule_slots WHERE 1=1"
	var args []interface{}

	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args))
	}
	if filter.DayOfWeek != "" {
		args = append(args, filter.DayOfWeek)
		query += fmt.Sprintf(" AND day_of_week = $%d", len(args))
	}
	if filter.SubjectPrefix != "" {
		args = append(args, filter.SubjectPrefix+"%")
		query += fmt.Sprintf(" AND subject LIKE $%d", len(args))
	}
	query += " ORDER BY created_at ASC, id ASC"

	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// TeacherIDsWithSubjectPrefix returns the distinct owners of any slot, on any
// day, whose subject starts with the prefix.
func (r *SlotRepository) TeacherIDsWithSubjectPrefix(ctx context.Context, prefix string) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM schedule_slots WHERE subject LIKE $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, prefix+"%"); err != nil {
		return nil, fmt.Errorf("list teachers by subject prefix: %w", err)
	}
	return ids, nil
}

// CountAll returns the total number of stored slots.
func (r *SlotRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM schedule_slots`); err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return count, nil
}
