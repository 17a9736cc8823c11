package ingest

import (
	"regexp"
	"strings"
)

var (
	lineBreakPattern = regexp.MustCompile(`\r?\n`)
	titledNamePattern = regexp.MustCompile(`^\s*(Ms\.|Mr\.)\s*(.+)$`)
	instructorPattern = regexp.MustCompile(`Instructor:\s*(Ms\.|Mr\.)\s*([^(]+)`)
	spaceRunPattern   = regexp.MustCompile(`\s+`)

	headerScanRows = 10
)

// SplitLines breaks a multi-line cell into trimmed, non-empty lines,
// tolerating both newline conventions.
func SplitLines(cell string) []string {
	parts := lineBreakPattern.Split(cell, -1)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// TeacherNameFromCell finds the first "Ms./Mr. Name" line inside a cell, the
// format class grids use to attribute a period to a teacher.
func TeacherNameFromCell(cell string) (string, bool) {
	for _, line := range SplitLines(cell) {
		if match := titledNamePattern.FindStringSubmatch(line); match != nil {
			return match[1] + " " + strings.TrimSpace(match[2]), true
		}
	}
	return "", false
}

// TeacherNameFromHeader scans the top rows of a per-teacher sheet for the
// "Instructor: Ms./Mr. Name (Tel: ...)" banner and extracts the titled name,
// stopping before any parenthesised contact details.
func TeacherNameFromHeader(rows [][]string) (string, bool) {
	limit := headerScanRows
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if !strings.Contains(cell, "Instructor:") {
				continue
			}
			if match := instructorPattern.FindStringSubmatch(cell); match != nil {
				return match[1] + " " + strings.TrimSpace(match[2]), true
			}
		}
	}
	return "", false
}

// ClassInfo is the subject/grade/campus triplet a per-teacher sheet packs
// into one cell, one line each. Missing trailing lines leave fields empty.
type ClassInfo struct {
	Subject string
	Grade   string
	Campus  string
}

// ParseClassInfo interprets a 1-3 line cell as class information.
func ParseClassInfo(cell string) (ClassInfo, bool) {
	lines := SplitLines(cell)
	if len(lines) == 0 {
		return ClassInfo{}, false
	}
	info := ClassInfo{Subject: lines[0]}
	if len(lines) > 1 {
		info.Grade = lines[1]
	}
	if len(lines) > 2 {
		info.Campus = lines[2]
	}
	return info, true
}

// NormalizeName produces the join key for a teacher name: whitespace is
// trimmed and collapsed, case is folded. Display casing is preserved
// elsewhere; this form only ever keys maps and lookups, so formatting drift
// between worksheets ("Ms. Jane Doe " vs "ms. jane doe") cannot split one
// teacher into two.
func NormalizeName(name string) string {
	collapsed := spaceRunPattern.ReplaceAllString(strings.TrimSpace(name), " ")
	return strings.ToLower(collapsed)
}
