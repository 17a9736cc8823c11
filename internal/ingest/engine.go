package ingest

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/models"
)

var (
	timeRangePattern = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})\s*((?i:AM|PM))?`)
	gradeLabelPattern = regexp.MustCompile(`Grade\s+([^\s/]+)`)
)

// Strategy interprets one worksheet layout. Parse returns ok=false when the
// sheet does not match the layout at all, letting the engine try the next
// strategy in order.
type Strategy interface {
	Name() string
	Parse(sheet Sheet) (SheetResult, bool)
}

// SheetResult is the outcome of one strategy over one worksheet.
type SheetResult struct {
	Schedules   []models.TeacherSchedule
	SkippedRows int
}

// ParseResult is the outcome of a whole workbook: the canonical schedule set
// per teacher plus diagnostics about what was skipped along the way.
type ParseResult struct {
	Schedules     []models.TeacherSchedule
	SkippedSheets []string
	SkippedRows   int
}

// Engine runs an ordered list of layout strategies over each worksheet and
// merges all discovered slots into one TeacherSchedule per teacher across the
// whole workbook, preserving encounter order.
type Engine struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewEngine builds an engine with the default strategy order: per-teacher
// instructor sheets first, per-class grids as the fallback.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		strategies: []Strategy{instructorSheetStrategy{}, classGridStrategy{}},
		logger:     logger,
	}
}

// Parse walks every sheet in the workbook. A sheet no strategy recognises is
// recorded as skipped and processing continues; only workbook decoding (see
// ReadWorkbook) is fatal.
func (e *Engine) Parse(sheets []Sheet) ParseResult {
	merged := newScheduleAccumulator()
	result := ParseResult{}

	for _, sheet := range sheets {
		matched := false
		for _, strategy := range e.strategies {
			sheetResult, ok := strategy.Parse(sheet)
			if !ok {
				continue
			}
			matched = true
			result.SkippedRows += sheetResult.SkippedRows
			for _, schedule := range sheetResult.Schedules {
				merged.add(schedule.TeacherName, schedule.Slots)
			}
			e.logger.Debug("worksheet parsed",
				zap.String("sheet", sheet.Name),
				zap.String("strategy", strategy.Name()),
				zap.Int("teachers", len(sheetResult.Schedules)),
			)
			break
		}
		if !matched {
			result.SkippedSheets = append(result.SkippedSheets, sheet.Name)
			e.logger.Warn("worksheet skipped: no layout strategy matched", zap.String("sheet", sheet.Name))
		}
	}

	result.Schedules = merged.ordered()
	return result
}

// scheduleAccumulator merges slots across worksheets keyed by normalized
// teacher name. The display name of the first encounter wins.
type scheduleAccumulator struct {
	byKey map[string]*models.TeacherSchedule
	order []string
}

func newScheduleAccumulator() *scheduleAccumulator {
	return &scheduleAccumulator{byKey: make(map[string]*models.TeacherSchedule)}
}

func (a *scheduleAccumulator) add(teacherName string, slots []models.ParsedSlot) {
	key := NormalizeName(teacherName)
	if key == "" {
		return
	}
	entry, ok := a.byKey[key]
	if !ok {
		entry = &models.TeacherSchedule{TeacherName: strings.TrimSpace(teacherName)}
		a.byKey[key] = entry
		a.order = append(a.order, key)
	}
	entry.Slots = append(entry.Slots, slots...)
}

func (a *scheduleAccumulator) ordered() []models.TeacherSchedule {
	schedules := make([]models.TeacherSchedule, 0, len(a.order))
	for _, key := range a.order {
		schedules = append(schedules, *a.byKey[key])
	}
	return schedules
}

// parseTimeRange extracts "H:MM - H:MM AM/PM" from a time cell, applying the
// shared AM/PM marker to both endpoints. The marker is matched
// case-insensitively and stored uppercase so labels compare uniformly.
// Lunch and break rows are the caller's concern; this only reports pattern
// match failure.
func parseTimeRange(text string) (start, end string, ok bool) {
	match := timeRangePattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}
	start, end = match[1], match[2]
	if period := strings.ToUpper(match[3]); period != "" {
		start = start + " " + period
		end = end + " " + period
	}
	return start, end, true
}

func isBreakRow(timeCell string) bool {
	lower := strings.ToLower(timeCell)
	return strings.Contains(lower, "lunch") || strings.Contains(lower, "break")
}

// instructorSheetStrategy handles per-teacher sheets: an "Instructor:" banner
// names the sheet's single teacher and each day cell holds a
// subject/grade/campus triplet.
type instructorSheetStrategy struct{}

func (instructorSheetStrategy) Name() string { return "instructor-sheet" }

func (instructorSheetStrategy) Parse(sheet Sheet) (SheetResult, bool) {
	teacherName, ok := TeacherNameFromHeader(sheet.Rows)
	if !ok {
		return SheetResult{}, false
	}

	schedule := models.TeacherSchedule{TeacherName: teacherName}
	result := SheetResult{}

	layout, ok := LocateHeader(sheet.Rows)
	if !ok {
		// The teacher is named but the grid is missing; an empty schedule
		// still claims the sheet so the grid fallback does not misread it.
		result.Schedules = []models.TeacherSchedule{schedule}
		return result, true
	}

	for i := layout.HeaderRow + 1; i < len(sheet.Rows); i++ {
		timeCell := strings.TrimSpace(sheet.cell(i, layout.TimeCol))
		if timeCell == "" || isBreakRow(timeCell) {
			continue
		}
		start, end, ok := parseTimeRange(timeCell)
		if !ok {
			result.SkippedRows++
			continue
		}

		for _, day := range models.Weekdays {
			col, ok := layout.DayCols[day]
			if !ok {
				continue
			}
			cellValue := strings.TrimSpace(sheet.cell(i, col))
			if cellValue == "" {
				continue
			}
			info, ok := ParseClassInfo(cellValue)
			if !ok || info.Subject == "" {
				continue
			}
			schedule.Slots = append(schedule.Slots, models.ParsedSlot{
				DayOfWeek: day,
				StartTime: start,
				EndTime:   end,
				Subject:   info.Subject,
				ClassRoom: joinRoomParts(info.Grade, info.Campus),
			})
		}
	}

	result.Schedules = []models.TeacherSchedule{schedule}
	return result, true
}

// classGridStrategy handles per-class sheets: the grid cells name the teacher
// per period ("Subject\nMs. Name") and the class label comes from a "Grade …"
// marker in the header region, falling back to the sheet name.
type classGridStrategy struct{}

func (classGridStrategy) Name() string { return "class-grid" }

func (classGridStrategy) Parse(sheet Sheet) (SheetResult, bool) {
	layout, ok := LocateHeader(sheet.Rows)
	if !ok {
		return SheetResult{}, false
	}

	classRoom := sheet.Name
	labelScan := 5
	if len(sheet.Rows) < labelScan {
		labelScan = len(sheet.Rows)
	}
scan:
	for i := 0; i < labelScan; i++ {
		for _, cell := range sheet.Rows[i] {
			if !strings.Contains(cell, "Grade") {
				continue
			}
			if match := gradeLabelPattern.FindString(cell); match != "" {
				classRoom = strings.TrimSpace(match)
				break scan
			}
		}
	}

	merged := newScheduleAccumulator()
	result := SheetResult{}

	for i := layout.HeaderRow + 1; i < len(sheet.Rows); i++ {
		timeCell := strings.TrimSpace(sheet.cell(i, layout.TimeCol))
		if timeCell == "" || isBreakRow(timeCell) {
			continue
		}
		start, end, ok := parseTimeRange(timeCell)
		if !ok {
			result.SkippedRows++
			continue
		}

		for _, day := range models.Weekdays {
			col, ok := layout.DayCols[day]
			if !ok {
				continue
			}
			cellValue := strings.TrimSpace(sheet.cell(i, col))
			if cellValue == "" {
				continue
			}
			teacherName, ok := TeacherNameFromCell(cellValue)
			if !ok {
				continue
			}
			subject := ""
			if lines := SplitLines(cellValue); len(lines) > 0 {
				subject = lines[0]
			}
			merged.add(teacherName, []models.ParsedSlot{{
				DayOfWeek: day,
				StartTime: start,
				EndTime:   end,
				Subject:   subject,
				ClassRoom: classRoom,
			}})
		}
	}

	result.Schedules = merged.ordered()
	return result, true
}

func joinRoomParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " - ")
}
