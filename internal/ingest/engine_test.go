package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/models"
)

func instructorSheet(name, teacher string) Sheet {
	return Sheet{
		Name: name,
		Rows: [][]string{
			{"", "Instructor: " + teacher + " (Tel: 012 345 678)"},
			{"No.", "Time", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			{"1", "8:00 - 8:50 AM", "Math\nGrade 4\nMain Campus", "", "", "", ""},
			{"2", "9:00 - 9:50 AM", "", "Science\nGrade 5", "", "", ""},
			{"", "11:30 - 12:30 Lunch Break", "", "", "", "", ""},
			{"3", "1:30 - 2:20 PM", "", "", "KH-Khmer Writing\nGrade 4", "", ""},
		},
	}
}

func classGridSheet(name string) Sheet {
	return Sheet{
		Name: name,
		Rows: [][]string{
			{"Grade 4/A Class Schedule"},
			{"Time", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			{"8:00 - 8:50 AM", "Math\nMs. Jane Doe", "Science\nMr. Dara Sok", "", "", ""},
			{"9:00 - 9:50 AM", "", "Math\nMs. Jane Doe", "", "", ""},
			{"morning break", "", "", "", "", ""},
			{"not a time", "English\nMr. Dara Sok", "", "", "", ""},
		},
	}
}

func TestEngineInstructorSheet(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	result := engine.Parse([]Sheet{instructorSheet("Ms. Chan", "Ms. Sreyneang Chan")})
	require.Len(t, result.Schedules, 1)

	schedule := result.Schedules[0]
	assert.Equal(t, "Ms. Sreyneang Chan", schedule.TeacherName)
	require.Len(t, schedule.Slots, 3)

	assert.Equal(t, models.ParsedSlot{
		DayOfWeek: "Monday",
		StartTime: "8:00 AM",
		EndTime:   "8:50 AM",
		Subject:   "Math",
		ClassRoom: "Grade 4 - Main Campus",
	}, schedule.Slots[0])

	// Missing campus line degrades to grade only.
	assert.Equal(t, "Grade 5", schedule.Slots[1].ClassRoom)

	// PM marker is applied to both endpoints.
	assert.Equal(t, "1:30 PM", schedule.Slots[2].StartTime)
	assert.Equal(t, "2:20 PM", schedule.Slots[2].EndTime)

	assert.Empty(t, result.SkippedSheets)
}

func TestEngineLowercasePeriodMarkerNormalised(t *testing.T) {
	sheet := Sheet{
		Name: "Ms. Chan",
		Rows: [][]string{
			{"Instructor: Ms. Sreyneang Chan"},
			{"Time", "Monday"},
			{"1:30 - 2:20 pm", "Math\nGrade 4"},
		},
	}
	engine := NewEngine(zap.NewNop())

	result := engine.Parse([]Sheet{sheet})
	require.Len(t, result.Schedules, 1)
	require.Len(t, result.Schedules[0].Slots, 1)
	assert.Equal(t, "1:30 PM", result.Schedules[0].Slots[0].StartTime)
	assert.Equal(t, "2:20 PM", result.Schedules[0].Slots[0].EndTime)
}

func TestEngineClassGridFallback(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	result := engine.Parse([]Sheet{classGridSheet("G4A")})
	require.Len(t, result.Schedules, 2)

	byName := map[string]models.TeacherSchedule{}
	for _, s := range result.Schedules {
		byName[s.TeacherName] = s
	}

	jane := byName["Ms. Jane Doe"]
	require.Len(t, jane.Slots, 2)
	assert.Equal(t, "Math", jane.Slots[0].Subject)
	assert.Equal(t, "Grade 4/A", jane.Slots[0].ClassRoom)
	assert.Equal(t, "Tuesday", jane.Slots[1].DayOfWeek)

	dara := byName["Mr. Dara Sok"]
	require.Len(t, dara.Slots, 1)
	assert.Equal(t, "Science", dara.Slots[0].Subject)

	// The "not a time" row is counted, the break row is not.
	assert.Equal(t, 1, result.SkippedRows)
}

func TestEngineGradeMarkerBeatsSheetName(t *testing.T) {
	sheet := classGridSheet("Random Sheet Name")
	engine := NewEngine(zap.NewNop())

	result := engine.Parse([]Sheet{sheet})
	require.NotEmpty(t, result.Schedules)
	assert.Equal(t, "Grade 4/A", result.Schedules[0].Slots[0].ClassRoom)
}

func TestEngineSheetNameUsedWithoutGradeMarker(t *testing.T) {
	sheet := classGridSheet("G4A")
	sheet.Rows[0] = []string{"just a title"}
	engine := NewEngine(zap.NewNop())

	result := engine.Parse([]Sheet{sheet})
	require.NotEmpty(t, result.Schedules)
	assert.Equal(t, "G4A", result.Schedules[0].Slots[0].ClassRoom)
}

func TestEngineMergesTeacherAcrossSheets(t *testing.T) {
	own := Sheet{
		Name: "Ms. Doe",
		Rows: [][]string{
			{"Instructor: Ms. Jane Doe"},
			{"Time", "Monday"},
			{"8:00 - 8:50 AM", "Math\nGrade 4\nMain Campus"},
		},
	}
	grid := Sheet{
		Name: "G5B",
		Rows: [][]string{
			{"Time", "Tuesday"},
			{"9:00 - 9:50 AM", "Science\nMs.  Jane  Doe "},
		},
	}

	engine := NewEngine(zap.NewNop())
	result := engine.Parse([]Sheet{own, grid})

	require.Len(t, result.Schedules, 1, "name drift must not split one teacher into two")
	schedule := result.Schedules[0]
	assert.Equal(t, "Ms. Jane Doe", schedule.TeacherName)
	require.Len(t, schedule.Slots, 2)
	assert.Equal(t, "Monday", schedule.Slots[0].DayOfWeek)
	assert.Equal(t, "Tuesday", schedule.Slots[1].DayOfWeek)
}

func TestEngineSkipsUnrecognisableSheet(t *testing.T) {
	junk := Sheet{Name: "Notes", Rows: [][]string{{"reminders"}, {"buy chalk"}}}
	engine := NewEngine(zap.NewNop())

	result := engine.Parse([]Sheet{junk, classGridSheet("G4A")})

	assert.Equal(t, []string{"Notes"}, result.SkippedSheets)
	assert.Len(t, result.Schedules, 2, "later sheets still parse")
}

func TestEngineInstructorSheetWithoutGridYieldsEmptySchedule(t *testing.T) {
	sheet := Sheet{
		Name: "Mr. Sok",
		Rows: [][]string{{"Instructor: Mr. Dara Sok"}, {"no grid here"}},
	}
	engine := NewEngine(zap.NewNop())

	result := engine.Parse([]Sheet{sheet})
	require.Len(t, result.Schedules, 1)
	assert.Equal(t, "Mr. Dara Sok", result.Schedules[0].TeacherName)
	assert.Empty(t, result.Schedules[0].Slots)
	assert.Empty(t, result.SkippedSheets)
}
