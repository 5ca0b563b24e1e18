package hours

import (
	"strconv"
	"strings"
	"time"
)

// MonthLayout is the month-precision format of period bounds.
const MonthLayout = "2006-01"

// Spreadsheet serial day 0. Using 1899-12-30 absorbs the 1900 leap-year bug.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serial range accepted as a date. Numbers below minSerial (1927-05-18) have
// at most four digits and are read as years, not days; maxSerial is 9999-12-31.
const (
	minSerial = 10000
	maxSerial = 2958465
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02-01-2006",
	"2/1/2006",
}

// ParseDate parses a raw date cell: a spreadsheet serial (integer or fractional
// days) or one of the textual layouts above. Day-first layouts are tried before
// anything ambiguous.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if !(f >= minSerial && f <= maxSerial) {
			return time.Time{}, false
		}
		days := int(f)
		frac := time.Duration((f - float64(days)) * float64(24*time.Hour))
		return serialEpoch.AddDate(0, 0, days).Add(frac.Round(time.Second)), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// keep the wall clock of the cell, month bounds are UTC
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
		}
	}
	return time.Time{}, false
}

// InRange reports whether raw falls in [start, end], both month-precision and
// inclusive. With no bounds every value matches. Unparsable dates or bounds
// never match.
func InRange(raw, start, end string) bool {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return true
	}
	d, ok := ParseDate(raw)
	if !ok {
		return false
	}
	if start != "" {
		from, err := time.Parse(MonthLayout, start)
		if err != nil || d.Before(from) {
			return false
		}
	}
	if end != "" {
		to, err := time.Parse(MonthLayout, end)
		if err != nil {
			return false
		}
		// first instant of the following month, exclusive
		if !d.Before(to.AddDate(0, 1, 0)) {
			return false
		}
	}
	return true
}

// DateBounds returns the first and last month (MonthLayout) covered by the
// parseable time-entry dates, or empty strings when none parse.
func DateBounds(rows []TimeEntryRow) (string, string) {
	var first, last time.Time
	found := false
	for _, r := range rows {
		d, ok := ParseDate(r.Date)
		if !ok {
			continue
		}
		if !found || d.Before(first) {
			first = d
		}
		if !found || d.After(last) {
			last = d
		}
		found = true
	}
	if !found {
		return "", ""
	}
	return first.Format(MonthLayout), last.Format(MonthLayout)
}
