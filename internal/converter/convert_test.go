package converter

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"oncallconv/internal/config"
	"oncallconv/internal/model"
	"oncallconv/internal/parser"
	"oncallconv/internal/roster"
)

func cellRef(t *testing.T, col, row int) string {
	t.Helper()
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatalf("cell ref (%d,%d): %v", col, row, err)
	}
	return ref
}

func buildWorkbook(t *testing.T, sheets map[string]map[string]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for sheet, cells := range sheets {
		if first {
			defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet %s: %v", sheet, err)
		}
		for ref, value := range cells {
			if err := f.SetCellStr(sheet, ref, value); err != nil {
				t.Fatalf("set %s!%s: %v", sheet, ref, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func dayHeader(t *testing.T, cells map[string]string, row, firstCol, days int) {
	t.Helper()
	for d := 1; d <= days; d++ {
		cells[cellRef(t, firstCol+d-1, row)] = strconv.Itoa(d)
	}
}

// radiologyFixture builds the work and on-call uploads for November
// 2025 against the built-in layout. Nov 3 is a Monday.
func radiologyFixture(t *testing.T, workCells map[string]string) []Input {
	t.Helper()

	work := map[string]string{"A5": "3", "A6": "4"}
	for ref, v := range workCells {
		work[ref] = v
	}

	oncall := map[string]string{
		"A1": "November 2025",
		"A5": "AS",
	}
	dayHeader(t, oncall, 4, 4, 30)
	oncall[cellRef(t, 6, 5)] = "X" // day 3

	return []Input{
		{Name: "RadWork.xlsx", Data: buildWorkbook(t, map[string]map[string]string{"WORK SCHEDULE": work})},
		{Name: "RadCall.xlsx", Data: buildWorkbook(t, map[string]map[string]string{"Sheet1": oncall})},
	}
}

func TestConvert_Radiology(t *testing.T) {
	t.Parallel()

	inputs := radiologyFixture(t, map[string]string{
		"H5": "AS",
		"I5": "SG",
		"H6": "AS/TELE",
		"E5": "MC",
	})

	result, err := Convert(model.DepartmentRadiology, inputs, config.DefaultTables())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := strings.Join([]string{
		"ellias4^114^11/3/2025^700^11/3/2025^1100^1056^^^",
		"ellias4^114^11/4/2025^700^11/4/2025^1100^1056^^^",
		"gonzsa2^114^11/3/2025^1100^11/3/2025^1530^1056^^^",
		"chengme^126^11/3/2025^700^11/3/2025^1530^1056^^^",
		"ellias4^114^11/3/2025^1530^11/4/2025^700^1056^^^",
		"ellias4^126^11/3/2025^1530^11/4/2025^700^1056^^^",
		"ellias4^127^11/3/2025^1530^11/4/2025^700^1056^^^",
	}, "\n") + "\n"

	if string(result.CSV) != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", result.CSV, want)
	}
	if result.Records != 7 {
		t.Fatalf("want 7 records, got %d", result.Records)
	}
	if result.Year != 2025 || result.Month.String() != "November" {
		t.Fatalf("unexpected month: %s %d", result.Month, result.Year)
	}

	// IRA and MRI blocks are empty in the fixture.
	if len(result.Warnings) != 2 {
		t.Fatalf("want 2 zero-entry warnings, got %v", result.Warnings)
	}
	for _, w := range result.Warnings {
		if !strings.Contains(w, "no schedule entries") {
			t.Fatalf("unexpected warning: %q", w)
		}
	}

	if len(result.Workbook) == 0 {
		t.Fatalf("review workbook missing")
	}
}

func TestConvert_Radiology_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := radiologyFixture(t, map[string]string{"H5": "AS"})

	first, err := Convert(model.DepartmentRadiology, inputs, config.DefaultTables())
	if err != nil {
		t.Fatalf("first convert: %v", err)
	}
	second, err := Convert(model.DepartmentRadiology, inputs, config.DefaultTables())
	if err != nil {
		t.Fatalf("second convert: %v", err)
	}
	if !bytes.Equal(first.CSV, second.CSV) {
		t.Fatalf("conversion is not deterministic")
	}
}

func TestConvert_Radiology_InputOrderIrrelevant(t *testing.T) {
	t.Parallel()

	inputs := radiologyFixture(t, map[string]string{"H5": "AS"})
	swapped := []Input{inputs[1], inputs[0]}

	a, err := Convert(model.DepartmentRadiology, inputs, config.DefaultTables())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	b, err := Convert(model.DepartmentRadiology, swapped, config.DefaultTables())
	if err != nil {
		t.Fatalf("convert swapped: %v", err)
	}
	if !bytes.Equal(a.CSV, b.CSV) {
		t.Fatalf("output depends on upload order")
	}
}

func TestConvert_Radiology_UnknownEmployee(t *testing.T) {
	t.Parallel()

	inputs := radiologyFixture(t, map[string]string{"H5": "QQ"})

	result, err := Convert(model.DepartmentRadiology, inputs, config.DefaultTables())
	if err == nil {
		t.Fatalf("expected unknown-employee error")
	}
	if result != nil {
		t.Fatalf("no output may be produced on fatal errors")
	}
	var unknownErr *roster.UnknownEmployeeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("want UnknownEmployeeError, got %v", err)
	}
	if ErrorKind(err) != "unknown_employee" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}

func TestConvert_Radiology_MissingInput(t *testing.T) {
	t.Parallel()

	inputs := radiologyFixture(t, map[string]string{"H5": "AS"})

	_, err := Convert(model.DepartmentRadiology, inputs[:1], config.DefaultTables())
	var formatErr *parser.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("want FormatError, got %v", err)
	}
	if ErrorKind(err) != "format" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}

func TestConvert_Radiology_UndetectableMonth(t *testing.T) {
	t.Parallel()

	work := map[string]string{"A5": "3", "H5": "AS"}
	oncall := map[string]string{"A5": "AS"}
	dayHeader(t, oncall, 4, 4, 30)

	inputs := []Input{
		{Name: "work.xlsx", Data: buildWorkbook(t, map[string]map[string]string{"WORK SCHEDULE": work})},
		{Name: "oncall.xlsx", Data: buildWorkbook(t, map[string]map[string]string{"Sheet1": oncall})},
	}

	_, err := Convert(model.DepartmentRadiology, inputs, config.DefaultTables())
	var monthErr *parser.MonthDetectionError
	if !errors.As(err, &monthErr) {
		t.Fatalf("want MonthDetectionError, got %v", err)
	}
	if ErrorKind(err) != "month_detection" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}

// cardiologyFixture builds the cardiovascular and interventional
// uploads for November 2025.
func cardiologyFixture(t *testing.T, cvExtra map[string]string) []Input {
	t.Helper()

	cv := map[string]string{
		"B4":  "November",
		"D4":  "2025",
		"B12": "GS",
	}
	dayHeader(t, cv, 11, 3, 30)
	cv[cellRef(t, 5, 12)] = "X"  // day 3
	cv[cellRef(t, 6, 12)] = "XA" // day 4
	cv[cellRef(t, 7, 12)] = "XP" // day 5
	for ref, v := range cvExtra {
		cv[ref] = v
	}

	intv := map[string]string{}
	dayHeader(t, intv, 4, 4, 30)
	intv[cellRef(t, 4, 31)] = "Q" // day 1, a Saturday
	intv[cellRef(t, 6, 31)] = "S" // day 3, a Monday

	return []Input{
		{Name: "CV_Schedule.xlsx", Data: buildWorkbook(t, map[string]map[string]string{"NOV ON CALL": cv})},
		{Name: "Intv_Schedule.xlsx", Data: buildWorkbook(t, map[string]map[string]string{"November": intv})},
	}
}

func TestConvert_Cardiology(t *testing.T) {
	t.Parallel()

	result, err := Convert(model.DepartmentCardiology, cardiologyFixture(t, nil), config.DefaultTables())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := strings.Join([]string{
		"ghas4g^8^11/3/2025^700^11/4/2025^700^84^^^",
		"ghas4g^8^11/3/2025^700^11/4/2025^700^2001^^^",
		"ghas4g^8^11/4/2025^700^11/5/2025^700^84^^^",
		"ghas4g^8^11/5/2025^700^11/6/2025^700^2001^^^",
		"qulfi6e^94^11/1/2025^700^11/2/2025^700^3042457^On Call^^",
		"sentri0^94^11/3/2025^1600^11/4/2025^700^3042457^On Call^^",
	}, "\n") + "\n"

	if string(result.CSV) != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", result.CSV, want)
	}
	if result.Records != 6 {
		t.Fatalf("want 6 records, got %d", result.Records)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
}

func TestConvert_Cardiology_DuplicateFlagged(t *testing.T) {
	t.Parallel()

	// A second roster row marks the same tech on the same day.
	extra := map[string]string{"B13": "GS"}
	extra[cellRef(t, 5, 13)] = "X" // day 3 again
	inputs := cardiologyFixture(t, extra)

	result, err := Convert(model.DepartmentCardiology, inputs, config.DefaultTables())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	// Duplicates stay in the output and are flagged for review.
	if result.Records != 8 {
		t.Fatalf("want 8 records, got %d", result.Records)
	}
	dups := 0
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate record") {
			dups++
		}
	}
	if dups != 2 {
		t.Fatalf("want 2 duplicate warnings, got %v", result.Warnings)
	}
}

func TestConvert_UnknownDepartment(t *testing.T) {
	t.Parallel()

	_, err := Convert(model.Department("oncology"), []Input{{Name: "x.xlsx"}}, config.DefaultTables())
	if err == nil {
		t.Fatalf("expected error for unknown department")
	}
	if ErrorKind(err) != "internal" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}

func TestConvert_NoInputs(t *testing.T) {
	t.Parallel()

	_, err := Convert(model.DepartmentRadiology, nil, config.DefaultTables())
	var formatErr *parser.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("want FormatError, got %v", err)
	}
}
