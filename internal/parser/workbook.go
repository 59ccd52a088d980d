package parser

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook a loaded spreadsheet, owned by the conversion run that
// opened it. Cell reads are trimmed strings; excelize renders date and
// numeric cells with their display format.
type Workbook struct {
	name string
	file *excelize.File
}

// Open decodes workbook bytes. name is the uploaded file name, kept
// for error reporting and month detection.
func Open(name string, data []byte) (*Workbook, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{File: name, Err: err}
	}
	return &Workbook{name: name, file: file}, nil
}

// Name returns the original file name.
func (w *Workbook) Name() string { return w.name }

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// HasSheet reports whether a sheet with the exact name exists.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// RequireSheet fails with FormatError when the named sheet is absent.
func (w *Workbook) RequireSheet(name string) error {
	if !w.HasSheet(name) {
		return &FormatError{File: w.name, Sheet: name}
	}
	return nil
}

// SheetList returns the workbook's sheet names.
func (w *Workbook) SheetList() []string {
	return w.file.GetSheetList()
}

// ActiveSheet returns the workbook's active sheet name.
func (w *Workbook) ActiveSheet() string {
	return w.file.GetSheetName(w.file.GetActiveSheetIndex())
}

// MonthSheet returns the sheet whose name mentions the month (full
// name or abbreviation, case-insensitive), else the active sheet.
func (w *Workbook) MonthSheet(month time.Month) string {
	full := strings.ToLower(month.String())
	abbr := full[:3]
	for _, sheet := range w.SheetList() {
		lower := strings.ToLower(sheet)
		if strings.Contains(lower, full) || strings.Contains(lower, abbr) {
			return sheet
		}
	}
	return w.ActiveSheet()
}

// SheetWithTokens returns the first sheet whose name contains every
// token, case-insensitive.
func (w *Workbook) SheetWithTokens(tokens ...string) (string, bool) {
	for _, sheet := range w.SheetList() {
		lower := strings.ToLower(sheet)
		all := true
		for _, tok := range tokens {
			if !strings.Contains(lower, strings.ToLower(tok)) {
				all = false
				break
			}
		}
		if all {
			return sheet, true
		}
	}
	return "", false
}

// Cell reads the trimmed value at (col, row), both 1-based. Reads
// outside the sheet return "".
func (w *Workbook) Cell(sheet string, col, row int) string {
	if col < 1 || row < 1 {
		return ""
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return w.CellRef(sheet, ref)
}

// CellRef reads the trimmed value at an A1-style reference.
func (w *Workbook) CellRef(sheet, ref string) string {
	value, err := w.file.GetCellValue(sheet, ref)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// ColumnIndex converts a column letter to its 1-based index, 0 when
// the letter is invalid.
func ColumnIndex(letter string) int {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(letter))
	if err != nil {
		return 0
	}
	return n
}

// ParseDayNumber extracts a day-of-month from the cell forms the
// templates use: a bare number, "2-Nov" style, or a date rendering
// like "11/2/25". Returns false for anything else.
func ParseDayNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 31 {
			return n, true
		}
		return 0, false
	}

	for _, layout := range []string{"1/2/06", "1/2/2006", "2006-01-02", "1-2-06", "01-02-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Day(), true
		}
	}

	// "2-Nov" style day-first renderings
	if i := strings.Index(s, "-"); i > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(s[:i])); err == nil && n >= 1 && n <= 31 {
			return n, true
		}
	}

	return 0, false
}
