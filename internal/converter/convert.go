// Package converter turns a department's uploaded schedule workbooks
// into the caret-delimited import file. Convert is a pure
// transformation: same inputs and tables, byte-identical output.
package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"oncallconv/internal/config"
	"oncallconv/internal/model"
	"oncallconv/internal/parser"
	"oncallconv/internal/roster"
)

// Input one uploaded workbook.
type Input struct {
	Name string
	Data []byte
}

// Result the finished conversion: the import CSV, the XLSX review
// copy, and the non-fatal conditions observed along the way.
type Result struct {
	CSV      []byte
	Workbook []byte
	Records  int
	Year     int
	Month    time.Month
	Warnings []string
}

type runInfo struct {
	Year     int
	Month    time.Month
	Warnings []string
}

// Convert runs one department's conversion. Fatal errors return no
// output bytes; a partial import file is never produced.
func Convert(dept model.Department, inputs []Input, tables *config.Tables) (*Result, error) {
	if len(inputs) == 0 {
		return nil, &parser.FormatError{File: "(none)", Err: errors.New("no input files supplied")}
	}

	var (
		records []model.ImportRecord
		info    *runInfo
		err     error
	)
	switch dept {
	case model.DepartmentRadiology:
		records, info, err = convertRadiology(inputs, tables)
	case model.DepartmentCardiology:
		records, info, err = convertCardiology(inputs, tables)
	default:
		return nil, fmt.Errorf("unknown department %q", dept)
	}
	if err != nil {
		return nil, err
	}

	workbook, err := RenderWorkbook(records, fmt.Sprintf("%s OnCall", info.Month))
	if err != nil {
		return nil, err
	}

	return &Result{
		CSV:      RenderCSV(records),
		Workbook: workbook,
		Records:  len(records),
		Year:     info.Year,
		Month:    info.Month,
		Warnings: info.Warnings,
	}, nil
}

// ErrorKind maps a conversion error to its taxonomy tag for reporting
// and the run log.
func ErrorKind(err error) string {
	var formatErr *parser.FormatError
	var monthErr *parser.MonthDetectionError
	var layoutErr *parser.LayoutError
	var empErr *roster.UnknownEmployeeError
	var roleErr *roster.UnknownRoleError

	switch {
	case errors.As(err, &formatErr):
		return "format"
	case errors.As(err, &monthErr):
		return "month_detection"
	case errors.As(err, &layoutErr):
		return "layout"
	case errors.As(err, &empErr):
		return "unknown_employee"
	case errors.As(err, &roleErr):
		return "unknown_role"
	default:
		return "internal"
	}
}

func inputNames(inputs []Input) string {
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.Name
	}
	return strings.Join(names, ", ")
}

func stem(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
