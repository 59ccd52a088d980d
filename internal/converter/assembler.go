package converter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"oncallconv/internal/config"
	"oncallconv/internal/model"
)

// FormatDate renders M/D/YYYY without zero padding.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// FormatClock renders a bare 24-hour numeral (700, 1530).
func FormatClock(t time.Time) string {
	return strconv.Itoa(t.Hour()*100 + t.Minute())
}

// assembler accumulates the unified record stream for a department.
// Duplicates on the full (employee, team, start, end, role) tuple are
// kept in the output and flagged for manual review.
type assembler struct {
	records  []model.ImportRecord
	seen     map[string]bool
	warnings []string
}

func newAssembler() *assembler {
	return &assembler{seen: make(map[string]bool)}
}

func (a *assembler) add(emp config.Employee, teamID string, iv Interval, role, notes string) {
	rec := model.ImportRecord{
		Employee:  emp.Username,
		Team:      teamID,
		StartDate: FormatDate(iv.Start),
		StartTime: FormatClock(iv.Start),
		EndDate:   FormatDate(iv.End),
		EndTime:   FormatClock(iv.End),
		Role:      role,
		Notes:     notes,
	}

	key := strings.Join([]string{rec.Employee, rec.Team, rec.StartDate, rec.StartTime, rec.EndDate, rec.EndTime, rec.Role}, "|")
	if a.seen[key] {
		a.warnings = append(a.warnings,
			fmt.Sprintf("duplicate record for %s on team %s starting %s %s, review before import",
				rec.Employee, rec.Team, rec.StartDate, rec.StartTime))
	}
	a.seen[key] = true

	a.records = append(a.records, rec)
}

func (a *assembler) warn(format string, args ...any) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}
