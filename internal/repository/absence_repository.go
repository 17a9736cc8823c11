package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cover-planner-api/internal/models"
)

// AbsenceRepository manages persistence for absence records.
type AbsenceRepository struct {
	db *sqlx.DB
}

// NewAbsenceRepository constructs an AbsenceRepository.
func NewAbsenceRepository(db *sqlx.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

// Create inserts a new absence record.
func (r *AbsenceRepository) Create(ctx context.Context, absence *models.Absence) error {
	if absence.ID == "" {
		absence.ID = uuid.NewString()
	}
	if absence.CreatedAt.IsZero() {
		absence.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO absences (id, teacher_id, date, reason, created_at)
		VALUES (:id, :teacher_id, :date, :reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, absence); err != nil {
		return fmt.Errorf("create absence: %w", err)
	}
	return nil
}

// FindByID fetches an absence together with the absent teacher's name.
func (r *AbsenceRepository) FindByID(ctx context.Context, id string) (*models.Absence, error) {
	const query = `SELECT a.id, a.teacher_id, t.display_name AS teacher_name, a.date, a.reason, a.created_at
		FROM absences a
		JOIN teachers t ON t.id = a.teacher_id
		WHERE a.id = $1`
	var absence models.Absence
	if err := r.db.GetContext(ctx, &absence, query, id); err != nil {
		return nil, err
	}
	return &absence, nil
}

// ListRecent returns the most recently recorded absences.
func (r *AbsenceRepository) ListRecent(ctx context.Context, limit int) ([]models.Absence, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `SELECT a.id, a.teacher_id, t.display_name AS teacher_name, a.date, a.reason, a.created_at
		FROM absences a
		JOIN teachers t ON t.id = a.teacher_id
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $1`
	var absences []models.Absence
	if err := r.db.SelectContext(ctx, &absences, query, limit); err != nil {
		return nil, fmt.Errorf("list recent absences: %w", err)
	}
	return absences, nil
}

// CountAll returns the total number of absence records.
func (r *AbsenceRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM absences`); err != nil {
		return 0, fmt.Errorf("count absences: %w", err)
	}
	return count, nil
}
