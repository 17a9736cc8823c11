// Package clock normalises the human time labels found in timetable
// spreadsheets ("8:00 AM", "1:30 PM") into comparable minute offsets.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*((?i:AM|PM))?`)

// Time is a clock reading reduced to minutes since midnight. Parsed reports
// whether the source text actually matched the expected pattern; unparsable
// input yields minute 0 with Parsed=false so callers can reject or log it
// instead of silently scheduling at midnight.
type Time struct {
	MinuteOfDay int
	Parsed      bool
}

// Parse extracts the first "H:MM AM/PM" reading from text. The AM/PM marker
// is optional and case-insensitive; 12 AM maps to minute 0 and 12 PM to
// minute 720.
func Parse(text string) Time {
	match := clockPattern.FindStringSubmatch(text)
	if match == nil {
		return Time{}
	}

	hours, err := strconv.Atoi(match[1])
	if err != nil || hours > 23 {
		return Time{}
	}
	minutes, err := strconv.Atoi(match[2])
	if err != nil || minutes > 59 {
		return Time{}
	}

	switch strings.ToUpper(match[3]) {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}

	return Time{MinuteOfDay: hours*60 + minutes, Parsed: true}
}

// Minutes returns the minute offset for text, discarding the parse outcome.
// Matches the store's comparison semantics: garbage compares as midnight.
func Minutes(text string) int {
	return Parse(text).MinuteOfDay
}

// RangesOverlap reports whether two half-open time ranges share any instant.
// Ranges that merely touch at a boundary do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return Minutes(aStart) < Minutes(bEnd) && Minutes(bStart) < Minutes(aEnd)
}

// RangeLabel renders the display form used throughout the API.
func RangeLabel(start, end string) string {
	return fmt.Sprintf("%s - %s", start, end)
}
