package ingest

import (
	"io"

	"github.com/xuri/excelize/v2"

	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
)

// Sheet is one worksheet flattened into a grid of cell text. Cell values keep
// embedded line breaks so multi-line class cells survive decoding.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadWorkbook decodes an uploaded workbook into sheet grids. A workbook that
// cannot be decoded at all is a single fatal error; per-sheet problems are the
// engine's concern.
func ReadWorkbook(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnreadableWorkbook.Code, appErrors.ErrUnreadableWorkbook.Status, "workbook could not be decoded")
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnreadableWorkbook.Code, appErrors.ErrUnreadableWorkbook.Status, "worksheet "+name+" could not be read")
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// cell returns the trimmed-at-access cell value at (row, col), tolerating
// ragged rows.
func (s Sheet) cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
