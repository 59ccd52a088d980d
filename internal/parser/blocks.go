package parser

import (
	"fmt"
	"strings"
	"time"

	"oncallconv/internal/config"
)

// Slot identifies which shift block of a day produced an entry. The
// interval builder maps (slot, weekday/weekend) to a shift window.
type Slot int

const (
	// SlotWork full weekday work shift
	SlotWork Slot = iota
	// SlotWorkEarly first of two parallel weekday work blocks
	SlotWorkEarly
	// SlotWorkLate second of two parallel weekday work blocks
	SlotWorkLate
	// SlotOnCall on-call coverage block
	SlotOnCall
)

// ScheduleEntry one normalized grid fact: an employee token marked on
// a calendar date within a team block. Order of emission is row-major
// scan order and carries no downstream meaning.
type ScheduleEntry struct {
	Team     string
	TeamID   string
	Employee string
	Date     time.Time
	Marker   string
	Slot     Slot
}

// IsWeekday reports the fixed hospital calendar rule: Sunday through
// Thursday are weekdays, Friday and Saturday are the weekend.
func IsWeekday(d time.Time) bool {
	switch d.Weekday() {
	case time.Friday, time.Saturday:
		return false
	}
	return true
}

// locateDayColumns maps day-of-month to column index for a
// day-per-column block. Strategy: search rows [1, headerRowMax] for a
// header row carrying the ascending day sequence; fall back to fixed
// arithmetic from the configured first column. The second return
// reports whether a header row was found.
func locateDayColumns(wb *Workbook, sheet string, headerRowMax, firstCol, lastCol, days int) (map[int]int, bool) {
	need := days
	if need > 14 {
		need = 14
	}

	for row := 1; row <= headerRowMax; row++ {
		for col := 1; col <= firstCol+3; col++ {
			day, ok := ParseDayNumber(wb.Cell(sheet, col, row))
			if !ok || day != 1 {
				continue
			}
			run := 1
			for run < days {
				next, ok := ParseDayNumber(wb.Cell(sheet, col+run, row))
				if !ok || next != run+1 {
					break
				}
				run++
			}
			if run >= need {
				cols := make(map[int]int, days)
				for d := 1; d <= days && d <= run; d++ {
					if lastCol > 0 && col+d-1 > lastCol {
						break
					}
					cols[d] = col + d - 1
				}
				return cols, true
			}
		}
	}

	cols := make(map[int]int, days)
	for d := 1; d <= days; d++ {
		col := firstCol + d - 1
		if lastCol > 0 && col > lastCol {
			break
		}
		cols[d] = col
	}
	return cols, false
}

// ExtractRadiologyWork scans the shared radiology work grid (one row
// per day, one column per team slot) and emits weekday work entries
// for every team. Weekend coverage comes from the on-call sheet only.
func ExtractRadiologyWork(wb *Workbook, layout config.RadiologyLayout, teams []config.RadiologyTeam, year int, month time.Month) ([]ScheduleEntry, []string, error) {
	sheet := layout.WorkSheet
	dayCol := ColumnIndex(layout.WorkDayColumn)
	if dayCol == 0 {
		return nil, nil, &LayoutError{Team: "radiology work grid", Sheet: sheet, Reason: "day column not configured"}
	}

	dayRows := make(map[int]int)
	for _, band := range layout.WorkWeekBands {
		for row := band[0]; row <= band[1]; row++ {
			if day, ok := ParseDayNumber(wb.Cell(sheet, dayCol, row)); ok {
				if _, seen := dayRows[day]; !seen {
					dayRows[day] = row
				}
			}
		}
	}
	if len(dayRows) == 0 {
		return nil, nil, &LayoutError{
			Team:  "radiology work grid",
			Sheet: sheet,
			Reason: fmt.Sprintf("no day numbers found in column %s within the configured week bands",
				layout.WorkDayColumn),
		}
	}

	var entries []ScheduleEntry
	var warnings []string

	days := DaysIn(year, month)
	for _, team := range teams {
		for slotIdx, colLetter := range team.WorkColumns {
			col := ColumnIndex(colLetter)
			if col == 0 {
				return nil, nil, &LayoutError{Team: team.Name, Sheet: sheet, Reason: fmt.Sprintf("invalid work column %q", colLetter)}
			}
			for day := 1; day <= days; day++ {
				date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				if !IsWeekday(date) {
					continue
				}
				row, ok := dayRows[day]
				if !ok {
					continue
				}
				cell := wb.Cell(sheet, col, row)
				if cell == "" {
					continue
				}
				entries = append(entries, ScheduleEntry{
					Team:     team.Name,
					TeamID:   team.ID,
					Employee: cell,
					Date:     date,
					Marker:   cell,
					Slot:     workSlot(len(team.WorkColumns), slotIdx),
				})
			}
		}
	}

	return entries, warnings, nil
}

func workSlot(slotCount, idx int) Slot {
	if slotCount < 2 {
		return SlotWork
	}
	if idx == 0 {
		return SlotWorkEarly
	}
	return SlotWorkLate
}

// ExtractRadiologyOnCall scans one team's block on the on-call sheet:
// employee names down the name column, one column per day, X marking
// an assignment. The template pads empty cells with 0; only X counts.
func ExtractRadiologyOnCall(wb *Workbook, layout config.RadiologyLayout, team config.RadiologyTeam, year int, month time.Month) ([]ScheduleEntry, []string, error) {
	sheet := layout.OnCallSheet
	nameCol := ColumnIndex(layout.OnCallNameColumn)
	firstCol := ColumnIndex(layout.OnCallFirstDayColumn)
	if nameCol == 0 || firstCol == 0 {
		return nil, nil, &LayoutError{Team: team.Name, Sheet: sheet, Reason: "name or day column not configured"}
	}

	skip := make(map[int]bool, len(layout.OnCallSkipRows))
	for _, r := range layout.OnCallSkipRows {
		skip[r] = true
	}

	days := DaysIn(year, month)
	dayCols, headerFound := locateDayColumns(wb, sheet, layout.OnCallHeaderRowMax, firstCol, 0, days)

	var entries []ScheduleEntry
	var warnings []string
	anyName := false

	for row := team.OnCallRowStart; row <= team.OnCallRowEnd; row++ {
		if skip[row] {
			continue
		}
		name := wb.Cell(sheet, nameCol, row)
		if name == "" {
			for day := 1; day <= days; day++ {
				if strings.EqualFold(wb.Cell(sheet, dayCols[day], row), "X") {
					warnings = append(warnings,
						fmt.Sprintf("team %s: marker on day %d at row %d has no employee name, skipped", team.Name, day, row))
				}
			}
			continue
		}
		anyName = true
		for day := 1; day <= days; day++ {
			if !strings.EqualFold(wb.Cell(sheet, dayCols[day], row), "X") {
				continue
			}
			entries = append(entries, ScheduleEntry{
				Team:     team.Name,
				TeamID:   team.ID,
				Employee: name,
				Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
				Marker:   "X",
				Slot:     SlotOnCall,
			})
		}
	}

	if !anyName && !headerFound {
		return nil, nil, &LayoutError{
			Team:   team.Name,
			Sheet:  sheet,
			Reason: fmt.Sprintf("no employee names in rows %d-%d and no day header row", team.OnCallRowStart, team.OnCallRowEnd),
		}
	}

	return entries, warnings, nil
}

// ExtractCardiologyBlock scans one cardiology block on the given
// sheet. When the block has an employee column, marked cells carry
// shift markers (X/XA/XP); otherwise the marked cell itself holds the
// employee identifier.
func ExtractCardiologyBlock(wb *Workbook, sheet string, block config.CardiologyBlock, year int, month time.Month) ([]ScheduleEntry, []string, error) {
	firstCol := ColumnIndex(block.FirstDayColumn)
	if firstCol == 0 {
		return nil, nil, &LayoutError{Team: block.Name, Sheet: sheet, Reason: "first day column not configured"}
	}
	lastCol := ColumnIndex(block.LastDayColumn)

	empCol := 0
	if block.EmployeeColumn != "" {
		empCol = ColumnIndex(block.EmployeeColumn)
		if empCol == 0 {
			return nil, nil, &LayoutError{Team: block.Name, Sheet: sheet, Reason: fmt.Sprintf("invalid employee column %q", block.EmployeeColumn)}
		}
	}

	headerRowMax := block.RowStart - 1
	if headerRowMax > 11 {
		headerRowMax = 11
	}

	days := DaysIn(year, month)
	dayCols, headerFound := locateDayColumns(wb, sheet, headerRowMax, firstCol, lastCol, days)

	var entries []ScheduleEntry
	var warnings []string
	anyName := empCol == 0

	for row := block.RowStart; row <= block.RowEnd; row++ {
		name := ""
		if empCol > 0 {
			name = wb.Cell(sheet, empCol, row)
			if name != "" {
				anyName = true
			}
		}
		for day := 1; day <= days; day++ {
			col, ok := dayCols[day]
			if !ok {
				continue
			}
			cell := wb.Cell(sheet, col, row)
			if cell == "" {
				continue
			}
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if empCol > 0 {
				if name == "" {
					warnings = append(warnings,
						fmt.Sprintf("team %s: marker %q on day %d at row %d has no employee name, skipped", block.Name, cell, day, row))
					continue
				}
				entries = append(entries, ScheduleEntry{
					Team:     block.Name,
					TeamID:   block.ID,
					Employee: name,
					Date:     date,
					Marker:   strings.ToUpper(cell),
					Slot:     SlotOnCall,
				})
			} else {
				entries = append(entries, ScheduleEntry{
					Team:     block.Name,
					TeamID:   block.ID,
					Employee: cell,
					Date:     date,
					Marker:   cell,
					Slot:     SlotOnCall,
				})
			}
		}
	}

	if !anyName && !headerFound {
		return nil, nil, &LayoutError{
			Team:   block.Name,
			Sheet:  sheet,
			Reason: fmt.Sprintf("no employee names in rows %d-%d and no day header row", block.RowStart, block.RowEnd),
		}
	}

	return entries, warnings, nil
}
