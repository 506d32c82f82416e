package inboxfed

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: a feed with one fully parsed entry and one with only a
// raw date string
func testFeed() *gofeed.Feed {
	published := time.Date(2024, time.June, 5, 9, 30, 0, 0, time.UTC)
	return &gofeed.Feed{
		Title: "Example Weekly",
		Items: []*gofeed.Item{
			{
				Title:           "Parsed Entry",
				Link:            "https://example.substack.com/p/parsed-entry",
				PublishedParsed: &published,
			},
			{
				Title:     "Raw Entry",
				Link:      "https://example.substack.com/p/raw-entry",
				Published: "Jun 3, 2024",
			},
		},
	}
}

// TestFeedItems_Fields verifies feed entries map onto the RawItem
// contract
func TestFeedItems_Fields(t *testing.T) {
	items := FeedItems(testFeed())
	require.Len(t, items, 2)

	href, err := items[0].Href()
	require.NoError(t, err)
	assert.Equal(t, "https://example.substack.com/p/parsed-entry", href)

	title, err := items[0].Title()
	require.NoError(t, err)
	assert.Equal(t, "Parsed Entry", title)

	publisher, err := items[0].Publisher()
	require.NoError(t, err)
	assert.Equal(t, "Example Weekly", publisher)
}

// TestFeedItems_DateText verifies parsed dates render as calendar
// tokens and unparsed ones pass through raw
func TestFeedItems_DateText(t *testing.T) {
	items := FeedItems(testFeed())

	parsed, err := items[0].DateText()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", parsed)

	raw, err := items[1].DateText()
	require.NoError(t, err)
	assert.Equal(t, "Jun 3, 2024", raw)
}

// TestFeedItems_ThroughPipeline verifies feed entries flow through the
// extraction pipeline like page elements
func TestFeedItems_ThroughPipeline(t *testing.T) {
	extractor, err := NewExtractor("https://substack.com", "")
	require.NoError(t, err)
	p := NewPipeline(extractor, log.New(io.Discard))

	records, stats := p.Run(FeedItems(testFeed()), "06-04 TO 06-06", date(2024, time.June, 10))
	require.Len(t, records, 1)
	assert.Equal(t, "Parsed Entry", records[0].Title)
	assert.Equal(t, "Example Weekly", records[0].Publisher)
	assert.Equal(t, 1, stats.Rejections[RejectOutsideDateWindow])
}

// TestFeedItems_Empty verifies a feed with no entries
func TestFeedItems_Empty(t *testing.T) {
	items := FeedItems(&gofeed.Feed{Title: "Empty"})
	assert.Empty(t, items)
}
