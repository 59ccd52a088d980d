package converter

import (
	"errors"
	"strings"

	"oncallconv/internal/config"
	"oncallconv/internal/model"
	"oncallconv/internal/parser"
	"oncallconv/internal/roster"
)

// convertCardiology runs the cardiology pipeline: the cardiovascular
// workbook carries the echo tech block, the interventional workbook
// carries the single interventional cardiologist row.
func convertCardiology(inputs []Input, tables *config.Tables) ([]model.ImportRecord, *runInfo, error) {
	cfg := tables.Cardiology

	if len(inputs) != 2 {
		return nil, nil, &parser.FormatError{
			File: inputNames(inputs),
			Err:  errors.New("cardiology conversion requires the cardiovascular and interventional schedules"),
		}
	}

	var cardio, intv *parser.Workbook
	for _, in := range inputs {
		wb, err := parser.Open(in.Name, in.Data)
		if err != nil {
			return nil, nil, err
		}
		defer wb.Close()

		lower := strings.ToLower(in.Name)
		if intv == nil && (strings.Contains(lower, "intv") || strings.Contains(lower, "interventional")) {
			intv = wb
		} else if cardio == nil {
			cardio = wb
		} else {
			intv = wb
		}
	}
	// Neither name carried a token: the file with an on-call sheet is
	// the cardiovascular one.
	if cardio != nil && intv != nil {
		if _, ok := cardio.SheetWithTokens("on", "call"); !ok {
			if _, ok := intv.SheetWithTokens("on", "call"); ok {
				cardio, intv = intv, cardio
			}
		}
	}
	if cardio == nil || intv == nil {
		return nil, nil, &parser.FormatError{
			File: inputNames(inputs),
			Err:  errors.New("could not tell the cardiovascular and interventional schedules apart"),
		}
	}

	anchorSheet, ok := cardio.SheetWithTokens("on", "call")
	if !ok {
		anchorSheet = cardio.ActiveSheet()
	}
	anchor := cardio.CellRef(anchorSheet, cfg.MonthAnchorCell)
	yearHelper := cardio.CellRef(anchorSheet, cfg.YearHelperCell)
	year, month, err := parser.ResolveMonth(stem(cardio.Name()), anchor, yearHelper)
	if err != nil {
		return nil, nil, err
	}

	res := roster.NewResolver(cfg.Employees, cfg.MarkerRoles)
	asm := newAssembler()

	cardioEntries, warnings, err := parser.ExtractCardiologyBlock(cardio, cardio.MonthSheet(month), cfg.Cardiovascular, year, month)
	if err != nil {
		return nil, nil, err
	}
	asm.warnings = append(asm.warnings, warnings...)

	for _, e := range cardioEntries {
		emp, err := res.Resolve(e.Employee, e.Team)
		if err != nil {
			return nil, nil, err
		}
		roles, err := res.MarkerRoles(e.Marker, e.Team)
		if err != nil {
			return nil, nil, err
		}
		iv := buildInterval(e.Date, cardiologyWindow(cfg.Cardiovascular, e.Date))
		for _, role := range roles {
			asm.add(emp, e.TeamID, iv, role, cfg.Cardiovascular.Notes)
		}
	}
	if len(cardioEntries) == 0 {
		asm.warn("team %s: no schedule entries for %s %d", cfg.Cardiovascular.Name, month, year)
	}

	intvEntries, warnings, err := parser.ExtractCardiologyBlock(intv, intv.MonthSheet(month), cfg.Interventional, year, month)
	if err != nil {
		return nil, nil, err
	}
	asm.warnings = append(asm.warnings, warnings...)

	for _, e := range intvEntries {
		emp, err := res.Resolve(e.Employee, e.Team)
		if err != nil {
			return nil, nil, err
		}
		role, err := res.FirstRole(emp, e.Team)
		if err != nil {
			return nil, nil, err
		}
		iv := buildInterval(e.Date, cardiologyWindow(cfg.Interventional, e.Date))
		asm.add(emp, e.TeamID, iv, role, cfg.Interventional.Notes)
	}
	if len(intvEntries) == 0 {
		asm.warn("team %s: no schedule entries for %s %d", cfg.Interventional.Name, month, year)
	}

	return asm.records, &runInfo{Year: year, Month: month, Warnings: asm.warnings}, nil
}
