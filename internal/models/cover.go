package models

import "time"

// AvailableTeacher is a roster member free to take a slot.
type AvailableTeacher struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// SlotAvailability reports who can cover one of the absent teacher's slots.
type SlotAvailability struct {
	Time              string             `json:"time"`
	DayOfWeek         string             `json:"day_of_week"`
	StartTime         string             `json:"start_time"`
	EndTime           string             `json:"end_time"`
	Subject           string             `json:"subject"`
	ClassRoom         string             `json:"class_room,omitempty"`
	AvailableTeachers []AvailableTeacher `json:"available_teachers"`
}

// CoverResult is the computed answer to "who can cover teacher T on date D".
// It is derived on demand and never persisted.
type CoverResult struct {
	AbsentTeacher string             `json:"absent_teacher"`
	Date          time.Time          `json:"date"`
	DayOfWeek     string             `json:"day_of_week"`
	Slots         []SlotAvailability `json:"slots"`
}
