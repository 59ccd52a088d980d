package converter

import (
	"time"

	"oncallconv/internal/config"
	"oncallconv/internal/parser"
)

// Interval one concrete [start, end) span. End always follows start:
// it is derived by adding the shift duration to the start instant, so
// shifts crossing midnight land on the next calendar date.
type Interval struct {
	Start time.Time
	End   time.Time
}

func buildInterval(date time.Time, w config.ShiftWindow) Interval {
	start := time.Date(date.Year(), date.Month(), date.Day(),
		w.Start/100, w.Start%100, 0, 0, time.UTC)
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(w.Minutes) * time.Minute),
	}
}

// radiologyWindow picks the shift window governing a radiology entry.
// The false return means the entry has no coverage window under the
// policy (a work slot falling on a weekend).
func radiologyWindow(team config.RadiologyTeam, e parser.ScheduleEntry) (config.ShiftWindow, bool) {
	weekday := parser.IsWeekday(e.Date)

	if e.Slot == parser.SlotOnCall {
		if weekday {
			return team.OnCallWeekday, true
		}
		return team.OnCallWeekend, true
	}

	if !weekday {
		return config.ShiftWindow{}, false
	}
	switch e.Slot {
	case parser.SlotWork, parser.SlotWorkEarly:
		if len(team.WorkShifts) > 0 {
			return team.WorkShifts[0], true
		}
	case parser.SlotWorkLate:
		if len(team.WorkShifts) > 1 {
			return team.WorkShifts[1], true
		}
	}
	return config.ShiftWindow{}, false
}

// cardiologyWindow picks a cardiology block's window for a date.
func cardiologyWindow(block config.CardiologyBlock, date time.Time) config.ShiftWindow {
	if parser.IsWeekday(date) {
		return block.Weekday
	}
	return block.Weekend
}
