package models

import "time"

// Absence records that a teacher is out on a calendar date. Absences are
// created, never mutated.
type Absence struct {
	ID          string    `db:"id" json:"id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	TeacherName string    `db:"teacher_name" json:"teacher_name,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	Reason      *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
