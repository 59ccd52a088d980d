package parser

import "fmt"

// FormatError indicates the input is not a readable workbook, or a
// required sheet is absent. Fatal for the conversion run.
type FormatError struct {
	File  string
	Sheet string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("file %q: required sheet %q not found", e.File, e.Sheet)
	}
	return fmt.Sprintf("file %q: not a readable workbook: %v", e.File, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// MonthDetectionError indicates neither the anchor cell nor the file
// name yields a parseable month/year.
type MonthDetectionError struct {
	File string
}

func (e *MonthDetectionError) Error() string {
	return fmt.Sprintf("file %q: could not determine reporting month from anchor cell or file name", e.File)
}

// LayoutError indicates a team's expected block could not be located,
// meaning the workbook does not match the configured template.
type LayoutError struct {
	Team   string
	Sheet  string
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("team %s: block not found on sheet %q: %s", e.Team, e.Sheet, e.Reason)
}
