package models

import "time"

// Teacher represents one member of the teaching roster. DisplayName is the
// name exactly as it appears in uploaded timetables ("Ms. Jane Doe") and is
// treated as the natural key; NameKey is its normalized form used for joins
// across uploads.
type Teacher struct {
	ID          string    `db:"id" json:"id"`
	DisplayName string    `db:"display_name" json:"name"`
	NameKey     string    `db:"name_key" json:"-"`
	Email       *string   `db:"email" json:"email,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
