package inboxfed

import (
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FetchFeed fetches and parses a publication's RSS or Atom feed. The
// gofeed library detects and handles both formats.
func FetchFeed(url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// FeedItems wraps every entry of a feed as RawItems so feed entries
// flow through the same extraction pipeline as scraped page elements.
// The feed-level title serves as the publisher for each entry.
func FeedItems(feed *gofeed.Feed) []RawItem {
	items := make([]RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, &feedItem{item: item, feedTitle: feed.Title})
	}
	return items
}

// feedItem adapts one gofeed entry to the RawItem contract. Feed reads
// never fail after parsing, so the error results are always nil here.
type feedItem struct {
	item      *gofeed.Item
	feedTitle string
}

func (f *feedItem) Href() (string, error) {
	return f.item.Link, nil
}

func (f *feedItem) Title() (string, error) {
	return f.item.Title, nil
}

// DateText renders the entry's publication date the way the pipeline's
// date normalizer expects calendar tokens. Entries gofeed could not
// parse fall back to the raw on-feed string, which the normalizer may
// still resolve or report unresolvable.
func (f *feedItem) DateText() (string, error) {
	if f.item.PublishedParsed != nil {
		return f.item.PublishedParsed.Format("2006-01-02"), nil
	}
	return f.item.Published, nil
}

func (f *feedItem) Publisher() (string, error) {
	return f.feedTitle, nil
}
