package inboxfed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFilterQuery_LastNDays verifies the inclusive last-N window
func TestParseFilterQuery_LastNDays(t *testing.T) {
	ref := date(2024, time.June, 10)

	fq, err := ParseFilterQuery("LAST 7 DAYS", ref)
	require.NoError(t, err)
	assert.Equal(t, FilterLastNDays, fq.Kind)
	assert.Equal(t, 7, fq.Days)
	require.NotNil(t, fq.Interval)
	assert.Equal(t, date(2024, time.June, 4), fq.Interval.Start)
	assert.Equal(t, date(2024, time.June, 10), fq.Interval.End)
}

// TestParseFilterQuery_LastOneDay verifies "last 1 days" means today only
func TestParseFilterQuery_LastOneDay(t *testing.T) {
	ref := date(2024, time.June, 10)

	fq, err := ParseFilterQuery("LAST 1 DAYS", ref)
	require.NoError(t, err)
	require.NotNil(t, fq.Interval)
	assert.Equal(t, ref, fq.Interval.Start)
	assert.Equal(t, ref, fq.Interval.End)
}

// TestParseFilterQuery_CaseInsensitive verifies lowercase queries parse
func TestParseFilterQuery_CaseInsensitive(t *testing.T) {
	ref := date(2024, time.June, 10)

	fq, err := ParseFilterQuery("  last 3 days ", ref)
	require.NoError(t, err)
	assert.Equal(t, FilterLastNDays, fq.Kind)
	assert.Equal(t, 3, fq.Days)
}

// TestParseFilterQuery_LastZeroDays verifies a zero-width window is
// invalid rather than inverted
func TestParseFilterQuery_LastZeroDays(t *testing.T) {
	ref := date(2024, time.June, 10)

	_, err := ParseFilterQuery("LAST 0 DAYS", ref)
	assert.ErrorIs(t, err, ErrInvalidFilterQuery)
}

// TestParseFilterQuery_Range verifies an explicit range using the
// reference year
func TestParseFilterQuery_Range(t *testing.T) {
	ref := date(2025, time.March, 1)

	fq, err := ParseFilterQuery("06-01 TO 06-05", ref)
	require.NoError(t, err)
	assert.Equal(t, FilterRange, fq.Kind)
	require.NotNil(t, fq.Interval)
	assert.Equal(t, date(2025, time.June, 1), fq.Interval.Start)
	assert.Equal(t, date(2025, time.June, 5), fq.Interval.End)
}

// TestParseFilterQuery_RangeMonthNames verifies month-name sides parse
// after uppercasing
func TestParseFilterQuery_RangeMonthNames(t *testing.T) {
	ref := date(2024, time.June, 10)

	fq, err := ParseFilterQuery("Jun 1 to Jun 5", ref)
	require.NoError(t, err)
	require.NotNil(t, fq.Interval)
	assert.Equal(t, date(2024, time.June, 1), fq.Interval.Start)
	assert.Equal(t, date(2024, time.June, 5), fq.Interval.End)
}

// TestParseFilterQuery_ReversedRange verifies start after end is invalid
func TestParseFilterQuery_ReversedRange(t *testing.T) {
	ref := date(2024, time.June, 10)

	_, err := ParseFilterQuery("06-05 TO 06-01", ref)
	assert.ErrorIs(t, err, ErrInvalidFilterQuery)
}

// TestParseFilterQuery_RangeBadSide verifies an unparseable side is
// invalid
func TestParseFilterQuery_RangeBadSide(t *testing.T) {
	ref := date(2024, time.June, 10)

	_, err := ParseFilterQuery("06-01 TO whenever", ref)
	assert.ErrorIs(t, err, ErrInvalidFilterQuery)
}

// TestParseFilterQuery_SingleDate verifies a single date becomes a
// one-day interval
func TestParseFilterQuery_SingleDate(t *testing.T) {
	ref := date(2024, time.June, 10)

	fq, err := ParseFilterQuery("Jun 5", ref)
	require.NoError(t, err)
	assert.Equal(t, FilterSingleDate, fq.Kind)
	require.NotNil(t, fq.Interval)
	assert.Equal(t, date(2024, time.June, 5), fq.Interval.Start)
	assert.Equal(t, date(2024, time.June, 5), fq.Interval.End)
}

// TestParseFilterQuery_SingleDateWithYear verifies explicit years are
// honored
func TestParseFilterQuery_SingleDateWithYear(t *testing.T) {
	ref := date(2024, time.June, 10)

	fq, err := ParseFilterQuery("2023-11-20", ref)
	require.NoError(t, err)
	require.NotNil(t, fq.Interval)
	assert.Equal(t, date(2023, time.November, 20), fq.Interval.Start)
}

// TestParseFilterQuery_Empty verifies empty and whitespace queries mean
// no filtering
func TestParseFilterQuery_Empty(t *testing.T) {
	ref := date(2024, time.June, 10)

	for _, query := range []string{"", "   "} {
		fq, err := ParseFilterQuery(query, ref)
		require.NoError(t, err)
		assert.Equal(t, FilterNone, fq.Kind)
		assert.Nil(t, fq.Interval)
	}
}

// TestParseFilterQuery_Garbage verifies an unrecognized query is
// invalid, not "no filter"
func TestParseFilterQuery_Garbage(t *testing.T) {
	ref := date(2024, time.June, 10)

	_, err := ParseFilterQuery("recent stuff please", ref)
	assert.ErrorIs(t, err, ErrInvalidFilterQuery)
}

// TestDateInterval_Contains verifies inclusivity on both ends
func TestDateInterval_Contains(t *testing.T) {
	iv := DateInterval{Start: date(2024, time.June, 4), End: date(2024, time.June, 10)}

	assert.True(t, iv.Contains(date(2024, time.June, 4)), "start is inclusive")
	assert.True(t, iv.Contains(date(2024, time.June, 10)), "end is inclusive")
	assert.True(t, iv.Contains(date(2024, time.June, 7)))
	assert.False(t, iv.Contains(date(2024, time.June, 3)))
	assert.False(t, iv.Contains(date(2024, time.June, 11)))
}
