package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearTokenRe = regexp.MustCompile(`20\d{2}`)

// dateLayouts covers the renderings excelize produces for date-typed
// anchor cells.
var anchorDateLayouts = []string{
	"January 2006", "Jan 2006", "January, 2006",
	"1/2/06", "1/2/2006", "2006-01-02", "1-2-06", "01-02-06", "Jan-06",
}

// MatchMonthToken finds an English month name or abbreviation inside
// the text, case-insensitive. Months are tried in calendar order.
func MatchMonthToken(text string) (time.Month, bool) {
	lower := strings.ToLower(text)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if strings.Contains(lower, full) || strings.Contains(lower, full[:3]) {
			return m, true
		}
	}
	return 0, false
}

// ParseMonthYear extracts a (year, month) pair from free text: a date
// rendering, or a month token beside a 4-digit year token.
func ParseMonthYear(text string) (year int, month time.Month, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, 0, false
	}

	for _, layout := range anchorDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Year(), t.Month(), true
		}
	}

	month, ok = MatchMonthToken(text)
	if !ok {
		return 0, 0, false
	}
	yearStr := yearTokenRe.FindString(text)
	if yearStr == "" {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(yearStr)
	return year, month, true
}

// ResolveMonth determines the reporting month for a run. The anchor
// texts (cell values, in configured order) are authoritative; the file
// name is the fallback. Neither parsing is a MonthDetectionError.
func ResolveMonth(fileName string, anchorTexts ...string) (year int, month time.Month, err error) {
	anchor := strings.TrimSpace(strings.Join(anchorTexts, " "))
	if anchor != "" {
		if y, m, ok := ParseMonthYear(anchor); ok {
			return y, m, nil
		}
	}

	if y, m, ok := ParseMonthYear(fileName); ok {
		return y, m, nil
	}

	return 0, 0, &MonthDetectionError{File: fileName}
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
