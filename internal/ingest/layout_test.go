package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateHeader(t *testing.T) {
	rows := [][]string{
		{"", "Weekly Timetable", ""},
		{"No.", "Time", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		{"1", "8:00 - 8:50 AM", "Math", "", "", "", ""},
	}

	layout, ok := LocateHeader(rows)
	require.True(t, ok)
	assert.Equal(t, 1, layout.HeaderRow)
	assert.Equal(t, 1, layout.TimeCol)
	assert.Equal(t, map[string]int{
		"Monday": 2, "Tuesday": 3, "Wednesday": 4, "Thursday": 5, "Friday": 6,
	}, layout.DayCols)
}

func TestLocateHeaderCaseInsensitive(t *testing.T) {
	rows := [][]string{
		{"TIME", "MONDAY", "friday"},
	}

	layout, ok := LocateHeader(rows)
	require.True(t, ok)
	assert.Equal(t, 0, layout.HeaderRow)
	assert.Equal(t, 0, layout.TimeCol)
	assert.Equal(t, map[string]int{"Monday": 1, "Friday": 2}, layout.DayCols)
}

func TestLocateHeaderNotFound(t *testing.T) {
	_, ok := LocateHeader([][]string{
		{"just", "text"},
		{"no", "grid", "here"},
	})
	assert.False(t, ok)

	_, ok = LocateHeader(nil)
	assert.False(t, ok)
}

func TestLocateHeaderNeedsBothTimeAndDay(t *testing.T) {
	_, ok := LocateHeader([][]string{{"Time", "Notes"}})
	assert.False(t, ok)

	// Day columns without a time column never complete the header.
	_, ok = LocateHeader([][]string{{"Monday", "Tuesday"}})
	assert.False(t, ok)
}
