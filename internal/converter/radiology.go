package converter

import (
	"errors"

	"oncallconv/internal/config"
	"oncallconv/internal/model"
	"oncallconv/internal/parser"
	"oncallconv/internal/roster"
)

// convertRadiology runs the radiology pipeline: the work-schedule
// grid supplies weekday work blocks, the on-call sheet supplies the
// evening and weekend coverage.
func convertRadiology(inputs []Input, tables *config.Tables) ([]model.ImportRecord, *runInfo, error) {
	layout := tables.Radiology.Layout

	if len(inputs) != 2 {
		return nil, nil, &parser.FormatError{
			File: inputNames(inputs),
			Err:  errors.New("radiology conversion requires the work schedule and the on-call schedule"),
		}
	}

	var work, oncall *parser.Workbook
	for _, in := range inputs {
		wb, err := parser.Open(in.Name, in.Data)
		if err != nil {
			return nil, nil, err
		}
		defer wb.Close()

		if work == nil && wb.HasSheet(layout.WorkSheet) {
			work = wb
		} else if oncall == nil {
			oncall = wb
		} else if work == nil {
			work = wb
		}
	}
	if work == nil || !work.HasSheet(layout.WorkSheet) {
		return nil, nil, &parser.FormatError{File: inputNames(inputs), Sheet: layout.WorkSheet}
	}
	if err := oncall.RequireSheet(layout.OnCallSheet); err != nil {
		return nil, nil, err
	}

	anchor := oncall.CellRef(layout.OnCallSheet, layout.MonthAnchorCell)
	year, month, err := parser.ResolveMonth(stem(oncall.Name()), anchor)
	if err != nil {
		return nil, nil, err
	}

	res := roster.NewResolver(tables.Radiology.Employees, nil)
	asm := newAssembler()
	perTeam := make(map[string]int, len(tables.Radiology.Teams))

	workEntries, warnings, err := parser.ExtractRadiologyWork(work, layout, tables.Radiology.Teams, year, month)
	if err != nil {
		return nil, nil, err
	}
	asm.warnings = append(asm.warnings, warnings...)

	teamByName := make(map[string]config.RadiologyTeam, len(tables.Radiology.Teams))
	for _, team := range tables.Radiology.Teams {
		teamByName[team.Name] = team
	}

	for _, e := range workEntries {
		emp, err := res.ResolveWorkCell(e.Employee, e.Team)
		if err != nil {
			return nil, nil, err
		}
		role, err := res.FirstRole(emp, e.Team)
		if err != nil {
			return nil, nil, err
		}
		window, ok := radiologyWindow(teamByName[e.Team], e)
		if !ok {
			continue
		}
		asm.add(emp, e.TeamID, buildInterval(e.Date, window), role, "")
		perTeam[e.Team]++
	}

	for _, team := range tables.Radiology.Teams {
		entries, warnings, err := parser.ExtractRadiologyOnCall(oncall, layout, team, year, month)
		if err != nil {
			return nil, nil, err
		}
		asm.warnings = append(asm.warnings, warnings...)

		for _, e := range entries {
			emp, err := res.Resolve(e.Employee, e.Team)
			if err != nil {
				return nil, nil, err
			}
			role, err := res.FirstRole(emp, e.Team)
			if err != nil {
				return nil, nil, err
			}
			window, ok := radiologyWindow(team, e)
			if !ok {
				continue
			}
			asm.add(emp, e.TeamID, buildInterval(e.Date, window), role, "")
			perTeam[e.Team]++
		}
	}

	for _, team := range tables.Radiology.Teams {
		if perTeam[team.Name] == 0 {
			asm.warn("team %s: no schedule entries for %s %d", team.Name, month, year)
		}
	}

	return asm.records, &runInfo{Year: year, Month: month, Warnings: asm.warnings}, nil
}
