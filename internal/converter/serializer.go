package converter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"oncallconv/internal/model"
)

// RenderCSV renders the record stream caret-delimited, one record per
// line with a trailing newline, no header row. encoding/csv is not
// used: the import format forbids quoting and the fields never
// contain the delimiter.
func RenderCSV(records []model.ImportRecord) []byte {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(strings.Join(rec.Fields(), "^"))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// RenderWorkbook renders the review copy of the record stream as an
// XLSX workbook with a header row.
func RenderWorkbook(records []model.ImportRecord, sheetName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(model.OutputHeaders))
	for i, h := range model.OutputHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range records {
		fields := rec.Fields()
		row := make([]any, len(fields))
		for j, v := range fields {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
