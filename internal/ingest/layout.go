package ingest

import "strings"

// Layout locates the timetable grid inside a worksheet: the header row, the
// "Time" column and the column owned by each weekday.
type Layout struct {
	HeaderRow int
	TimeCol   int
	DayCols   map[string]int
}

var weekdayByHeader = map[string]string{
	"monday":    "Monday",
	"tuesday":   "Tuesday",
	"wednesday": "Wednesday",
	"thursday":  "Thursday",
	"friday":    "Friday",
}

// LocateHeader scans rows top-down for the first row containing a "time"
// cell and at least one weekday cell (case-insensitive). Returns false when
// no such row exists; callers treat the sheet as unparseable and move on.
func LocateHeader(rows [][]string) (Layout, bool) {
	layout := Layout{HeaderRow: -1, TimeCol: -1, DayCols: make(map[string]int)}

	for i, row := range rows {
		for j, cell := range row {
			text := strings.ToLower(strings.TrimSpace(cell))
			if text == "time" {
				layout.TimeCol = j
			}
			if day, ok := weekdayByHeader[text]; ok {
				layout.DayCols[day] = j
			}
		}
		if layout.TimeCol != -1 && len(layout.DayCols) > 0 {
			layout.HeaderRow = i
			return layout, true
		}
	}

	return Layout{}, false
}
