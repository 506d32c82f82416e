package inboxfed

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFilterQuery reports a filter query that matched none of the
// supported grammars or produced an inverted range. It is distinct from
// an empty query, which simply means "no filtering": callers are
// expected to warn and disable filtering for the run on this error
// rather than fail the run.
var ErrInvalidFilterQuery = errors.New("invalid date filter query")

// FilterKind tags the grammar a filter query matched.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterLastNDays
	FilterRange
	FilterSingleDate
)

// DateInterval is a closed calendar-date range; both ends inclusive.
type DateInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the interval, inclusive on
// both ends.
func (iv DateInterval) Contains(d time.Time) bool {
	return !d.Before(iv.Start) && !d.After(iv.End)
}

// FilterQuery is a parsed, immutable filter expression. Interval is nil
// only for FilterNone.
type FilterQuery struct {
	Kind     FilterKind
	Days     int // populated for FilterLastNDays
	Interval *DateInterval
}

var (
	lastNDaysPattern = regexp.MustCompile(`^LAST (\d+) DAYS`)
	rangePattern     = regexp.MustCompile(`^(.+?) TO (.+)$`)
)

// ParseFilterQuery parses a user-supplied filter expression against the
// three supported grammars, first match wins:
//
//	LAST <N> DAYS        inclusive window ending on the reference date
//	<start> TO <end>     explicit range, calendar dates only
//	<date>               a single day
//
// Matching is case-insensitive and whitespace-trimmed. An empty query
// yields FilterNone. A query that matches no grammar, or a range with
// start after end, returns ErrInvalidFilterQuery.
func ParseFilterQuery(query string, referenceDate time.Time) (FilterQuery, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return FilterQuery{Kind: FilterNone}, nil
	}

	upper := strings.ToUpper(trimmed)
	ref := dateOnly(referenceDate)

	if m := lastNDaysPattern.FindStringSubmatch(upper); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return FilterQuery{Kind: FilterNone}, fmt.Errorf("%w: %q", ErrInvalidFilterQuery, query)
		}
		return FilterQuery{
			Kind: FilterLastNDays,
			Days: n,
			Interval: &DateInterval{
				Start: ref.AddDate(0, 0, -(n - 1)),
				End:   ref,
			},
		}, nil
	}

	if m := rangePattern.FindStringSubmatch(upper); m != nil {
		start, _, startOK := parseCalendar(strings.TrimSpace(m[1]), ref.Year())
		end, _, endOK := parseCalendar(strings.TrimSpace(m[2]), ref.Year())
		if !startOK || !endOK || start.After(end) {
			return FilterQuery{Kind: FilterNone}, fmt.Errorf("%w: %q", ErrInvalidFilterQuery, query)
		}
		return FilterQuery{
			Kind:     FilterRange,
			Interval: &DateInterval{Start: start, End: end},
		}, nil
	}

	single, _, ok := parseCalendar(upper, ref.Year())
	if !ok {
		return FilterQuery{Kind: FilterNone}, fmt.Errorf("%w: %q", ErrInvalidFilterQuery, query)
	}
	return FilterQuery{
		Kind:     FilterSingleDate,
		Interval: &DateInterval{Start: single, End: single},
	}, nil
}
