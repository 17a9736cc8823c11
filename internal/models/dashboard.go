package models

import "time"

// DashboardSummary aggregates the counters shown on the landing dashboard.
type DashboardSummary struct {
	TeacherCount   int       `json:"teacher_count"`
	SlotCount      int       `json:"slot_count"`
	AbsenceCount   int       `json:"absence_count"`
	RecentAbsences []Absence `json:"recent_absences"`
	GeneratedAt    time.Time `json:"generated_at"`
}
