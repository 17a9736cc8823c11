package models

import (
	"strings"
	"time"
)

// Weekdays lists the school days in timetable order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// NonCoveringSubjectPrefix marks subjects whose teachers are modelled as
// lacking general substitution capability and therefore never cover other
// slots, regardless of their own availability.
const NonCoveringSubjectPrefix = "KH-"

// IsNonCoveringSubject reports whether a subject bars its teacher from cover
// duty.
func IsNonCoveringSubject(subject string) bool {
	return strings.HasPrefix(subject, NonCoveringSubjectPrefix)
}

// ScheduleSlot is one scheduled teaching period for one teacher. Start and
// end times are normalized "H:MM AM/PM" labels comparable via pkg/clock;
// start strictly precedes end on the same day.
type ScheduleSlot struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	DayOfWeek string    `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Subject   string    `db:"subject" json:"subject"`
	ClassRoom string    `db:"class_room" json:"class_room,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ParsedSlot is a slot as it comes out of a worksheet, before any teacher
// identity has been resolved against the store.
type ParsedSlot struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Subject   string `json:"subject"`
	ClassRoom string `json:"class_room,omitempty"`
}

// TeacherSchedule is the unit of ingestion output: one teacher name plus the
// ordered slots discovered for them across a whole workbook.
type TeacherSchedule struct {
	TeacherName string       `json:"teacher_name"`
	Slots       []ParsedSlot `json:"slots"`
}

// SlotFilter describes query params for listing schedule slots.
type SlotFilter struct {
	TeacherID     string
	DayOfWeek     string
	SubjectPrefix string
}

// WeeklySchedule groups one teacher's slots by weekday for presentation.
type WeeklySchedule struct {
	TeacherName string                    `json:"teacher_name"`
	Days        map[string][]ScheduleSlot `json:"days"`
}
