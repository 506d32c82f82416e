package inboxfed

import (
	"strings"
	"time"
)

// calendarLayouts are tried in order; the first layout that parses the
// whole token wins and later layouts are never consulted. Layouts
// without a year default to the reference year and are subject to the
// rollover correction below.
var calendarLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-1-2", true},
	{"1-2", false},
	{"Jan 2", false},
	{"January 2", false},
	{"Jan 2, 2006", true},
	{"January 2, 2006", true},
}

// dateOnly truncates a time to its calendar date in UTC. All dates the
// pipeline compares are normalized through here, so interval checks
// never depend on time-of-day or zone.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseCalendar attempts the calendar layouts against a trimmed token.
// It reports the parsed date, whether the winning layout carried an
// explicit year, and whether any layout matched at all.
func parseCalendar(token string, referenceYear int) (time.Time, bool, bool) {
	for _, cl := range calendarLayouts {
		parsed, err := time.Parse(cl.layout, token)
		if err != nil {
			continue
		}
		year := parsed.Year()
		if !cl.hasYear {
			year = referenceYear
		}
		return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), cl.hasYear, true
	}
	return time.Time{}, false, false
}

// NormalizeDate converts one on-page date token into a calendar date,
// using referenceDate as "today". The source page renders same-day
// items as a bare time of day ("2:14 PM"), the previous day as
// "Yesterday", and everything older as a calendar date that usually
// omits the year. The second return value is false when the token is
// unresolvable; callers treat that as "no determinable date" for the
// item rather than a failure of the batch.
func NormalizeDate(token string, referenceDate time.Time) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}

	ref := dateOnly(referenceDate)
	upper := strings.ToUpper(token)

	// A time-of-day string means the item was published today.
	if strings.Contains(token, ":") &&
		(strings.Contains(upper, "AM") || strings.Contains(upper, "PM")) {
		return ref, true
	}
	if strings.Contains(strings.ToLower(token), "yesterday") {
		return ref.AddDate(0, 0, -1), true
	}

	parsed, hadYear, ok := parseCalendar(token, ref.Year())
	if !ok {
		return time.Time{}, false
	}

	// Year-rollover correction: a yearless "Dec 30" seen in early
	// January belongs to the previous calendar year.
	if !hadYear && int(parsed.Month())-int(ref.Month()) > 6 {
		parsed = parsed.AddDate(-1, 0, 0)
	}
	return parsed, true
}
