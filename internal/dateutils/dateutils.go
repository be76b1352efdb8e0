// Package dateutils provides date parsing for bank statement imports.
//
// Statement dates arrive in bank-specific shapes: compact 8-digit numbers,
// slash or dash delimited day-first and year-first forms, with or without a
// time component. Interpretation is controlled by an explicit per-import
// order flag rather than guessed from the string shape.
package dateutils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateOrder selects how ambiguous numeric dates are interpreted.
type DateOrder string

const (
	// OrderDayFirst reads dates as day-month-year ("dmy").
	OrderDayFirst DateOrder = "dmy"
	// OrderYearFirst reads dates as year-month-day ("ymd").
	OrderYearFirst DateOrder = "ymd"
)

var (
	compactPattern   = regexp.MustCompile(`^\d{8}$`)
	dayFirstPattern  = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2,4})(?:[ T].*)?$`)
	yearFirstPattern = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})(?:[ T].*)?$`)
)

// fallbackLayouts are tried, in order, when none of the statement-specific
// patterns match.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"2 January 2006",
	"Jan 2, 2006",
}

// ParseStatementDate converts a raw statement date string into a UTC calendar
// date. When no pattern or fallback layout matches, the current instant is
// returned so that a malformed date degrades a row instead of failing the
// whole file. Callers that want to treat that as a data-quality signal can
// compare against time.Now themselves.
func ParseStatementDate(raw string, order DateOrder) time.Time {
	raw = strings.TrimSpace(raw)

	if compactPattern.MatchString(raw) {
		if order == OrderYearFirst {
			return utcDate(raw[0:4], raw[4:6], raw[6:8])
		}
		return utcDate(raw[4:8], raw[2:4], raw[0:2])
	}

	if order == OrderDayFirst {
		if m := dayFirstPattern.FindStringSubmatch(raw); m != nil {
			return utcDate(expandYear(m[3]), m[2], m[1])
		}
	} else {
		if m := yearFirstPattern.FindStringSubmatch(raw); m != nil {
			return utcDate(m[1], m[2], m[3])
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}

	return time.Now().UTC()
}

// DayWindow returns the UTC calendar-day boundaries containing t,
// [00:00:00.000, 23:59:59.999]. This is the window used to bound
// duplicate-candidate searches.
func DayWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return start, end
}

// expandYear widens a two-digit year by prefixing "20".
func expandYear(year string) string {
	if len(year) == 2 {
		return "20" + year
	}
	return year
}

func utcDate(year, month, day string) time.Time {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
}
