package models

// TeacherImportOutcome reports what happened to one teacher during a workbook
// import.
type TeacherImportOutcome struct {
	TeacherName string `json:"teacher_name"`
	SlotCount   int    `json:"slot_count"`
	Error       string `json:"error,omitempty"`
}

// ImportReport summarises a whole workbook import. Sheets and rows that could
// not be interpreted are reported rather than failing the upload.
type ImportReport struct {
	TeachersImported int                    `json:"teachers_imported"`
	SlotsImported    int                    `json:"slots_imported"`
	SkippedSheets    []string               `json:"skipped_sheets,omitempty"`
	SkippedRows      int                    `json:"skipped_rows"`
	PerTeacher       []TeacherImportOutcome `json:"per_teacher"`
}
