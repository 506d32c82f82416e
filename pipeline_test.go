package inboxfed

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: pipeline with a silent logger
func newTestPipeline(t *testing.T) *Pipeline {
	return NewPipeline(newTestExtractor(t), log.New(io.Discard))
}

// Test helper: a valid item whose title identifies it
func validItem(title, dateText string) *fakeItem {
	return &fakeItem{
		href:      "/p/" + title,
		title:     title,
		dateText:  dateText,
		publisher: "Example Weekly",
	}
}

// TestRun_PreservesOrderAndSkipsBadItem verifies a bad item is dropped
// without halting or reordering the rest
func TestRun_PreservesOrderAndSkipsBadItem(t *testing.T) {
	p := newTestPipeline(t)
	ref := date(2024, time.June, 10)

	items := []RawItem{
		validItem("one", "Jun 5"),
		validItem("two", "Jun 6"),
		&fakeItem{title: "three"}, // missing href
		validItem("four", "Jun 7"),
		validItem("five", "Jun 8"),
	}

	records, stats := p.Run(items, "", ref)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"one", "two", "four", "five"}, recordTitles(records))
	assert.Equal(t, 5, stats.Found)
	assert.Equal(t, 4, stats.Accepted)
	assert.Equal(t, 1, stats.Rejections[RejectMissingRequiredField])
}

func recordTitles(records []ArticleRecord) []string {
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	return titles
}

// TestRun_EmptyInput verifies zero items yields an empty result, not an
// error
func TestRun_EmptyInput(t *testing.T) {
	p := newTestPipeline(t)

	records, stats := p.Run(nil, "", date(2024, time.June, 10))
	assert.Empty(t, records)
	assert.Equal(t, 0, stats.Found)
	assert.Equal(t, 0, stats.Accepted)
	assert.False(t, stats.FilterDisabled)
}

// TestRun_FilterApplied verifies the parsed interval drives acceptance
func TestRun_FilterApplied(t *testing.T) {
	p := newTestPipeline(t)
	ref := date(2024, time.June, 10)

	items := []RawItem{
		validItem("recent", "Jun 9"),
		validItem("old", "Jan 2"),
		validItem("today", "3:15 PM"),
		validItem("undated", ""),
	}

	records, stats := p.Run(items, "LAST 7 DAYS", ref)
	assert.Equal(t, []string{"recent", "today"}, recordTitles(records))
	assert.Equal(t, 1, stats.Rejections[RejectOutsideDateWindow])
	assert.Equal(t, 1, stats.Rejections[RejectDateRequiredForFilter])
}

// TestRun_AcceptedDatesInsideInterval verifies every accepted record's
// resolved date lies within the active interval
func TestRun_AcceptedDatesInsideInterval(t *testing.T) {
	p := newTestPipeline(t)
	ref := date(2024, time.June, 10)

	items := []RawItem{
		validItem("a", "Jun 4"),
		validItem("b", "Jun 10"),
		validItem("c", "Jun 3"),
		validItem("d", "Yesterday"),
	}

	records, stats := p.Run(items, "06-04 TO 06-10", ref)
	require.NotNil(t, stats.Query.Interval)
	require.NotEmpty(t, records)
	for _, record := range records {
		require.NotNil(t, record.ResolvedDate)
		assert.True(t, stats.Query.Interval.Contains(*record.ResolvedDate),
			"record %q resolved to %s, outside the interval", record.Title, record.ResolvedDate)
	}
	assert.Equal(t, []string{"a", "b", "d"}, recordTitles(records))
}

// TestRun_InvalidQueryDisablesFiltering verifies an invalid query warns
// and proceeds unfiltered instead of failing the run
func TestRun_InvalidQueryDisablesFiltering(t *testing.T) {
	p := newTestPipeline(t)
	ref := date(2024, time.June, 10)

	items := []RawItem{
		validItem("recent", "Jun 9"),
		validItem("old", "Jan 2"),
		validItem("undated", ""),
	}

	records, stats := p.Run(items, "06-05 TO 06-01", ref)
	assert.True(t, stats.FilterDisabled)
	assert.Equal(t, FilterNone, stats.Query.Kind)
	assert.Len(t, records, 3, "all items accepted once filtering is disabled")
	assert.Zero(t, stats.Rejections[RejectOutsideDateWindow])
	assert.Zero(t, stats.Rejections[RejectDateRequiredForFilter])
}

// TestRun_EmptyQueryNeverRejectsOnDate verifies no date-window
// rejections without a filter
func TestRun_EmptyQueryNeverRejectsOnDate(t *testing.T) {
	p := newTestPipeline(t)
	ref := date(2024, time.June, 10)

	items := []RawItem{
		validItem("a", "Jan 2"),
		validItem("b", ""),
		validItem("c", "garbage date"),
	}

	records, stats := p.Run(items, "", ref)
	assert.Len(t, records, 3)
	assert.False(t, stats.FilterDisabled)
	assert.Zero(t, stats.Rejections[RejectOutsideDateWindow])
	assert.Zero(t, stats.Rejections[RejectDateRequiredForFilter])
}

// TestRun_SourceUnavailableDoesNotHalt verifies a mid-sequence read
// failure only drops that item
func TestRun_SourceUnavailableDoesNotHalt(t *testing.T) {
	p := newTestPipeline(t)
	ref := date(2024, time.June, 10)

	items := []RawItem{
		validItem("one", "Jun 5"),
		&fakeItem{hrefErr: assert.AnError},
		validItem("three", "Jun 6"),
	}

	records, stats := p.Run(items, "", ref)
	assert.Equal(t, []string{"one", "three"}, recordTitles(records))
	assert.Equal(t, 1, stats.Rejections[RejectSourceUnavailable])
}

// TestRun_DistinctRunIDs verifies each run gets its own ID and counters
func TestRun_DistinctRunIDs(t *testing.T) {
	p := newTestPipeline(t)
	ref := date(2024, time.June, 10)

	_, first := p.Run([]RawItem{validItem("a", "Jun 5")}, "", ref)
	_, second := p.Run(nil, "", ref)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, 1, first.Accepted)
	assert.Equal(t, 0, second.Accepted)
}
