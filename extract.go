package inboxfed

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultPathMarker identifies article permalinks on the source site:
// every post URL carries a /p/ path segment.
const DefaultPathMarker = "/p/"

// Extractor turns one RawItem into an ArticleRecord or a rejection. It
// is stateless across items: given the same item snapshot, reference
// date, and interval, Extract always yields the same outcome.
type Extractor struct {
	base       *url.URL
	pathMarker string
}

// NewExtractor creates an extractor that resolves relative hrefs
// against baseURL. An empty pathMarker falls back to DefaultPathMarker.
func NewExtractor(baseURL, pathMarker string) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if pathMarker == "" {
		pathMarker = DefaultPathMarker
	}
	return &Extractor{base: base, pathMarker: pathMarker}, nil
}

// Extract reads the item's fields and produces a record, or a
// RejectReason explaining why the item was dropped. Href and title are
// the only hard requirements; every other field is optional with a
// default. A failure reading any field rejects this item only and
// never aborts extraction of subsequent items.
func (e *Extractor) Extract(raw RawItem, referenceDate time.Time, interval *DateInterval) (*ArticleRecord, RejectReason) {
	href, err := raw.Href()
	if err != nil {
		return nil, RejectSourceUnavailable
	}
	title, err := raw.Title()
	if err != nil {
		return nil, RejectSourceUnavailable
	}
	dateText, err := raw.DateText()
	if err != nil {
		return nil, RejectSourceUnavailable
	}
	publisher, err := raw.Publisher()
	if err != nil {
		return nil, RejectSourceUnavailable
	}

	href = strings.TrimSpace(href)
	title = strings.TrimSpace(title)
	if href == "" || title == "" {
		return nil, RejectMissingRequiredField
	}
	if !strings.Contains(href, e.pathMarker) {
		return nil, RejectNotArticleLink
	}

	ref, err := url.Parse(href)
	if err != nil {
		// A href that is not even URL syntax cannot address an article.
		return nil, RejectNotArticleLink
	}
	fullURL := e.base.ResolveReference(ref).String()

	dateText = strings.TrimSpace(dateText)
	var resolved *time.Time
	if dateText != "" {
		if d, ok := NormalizeDate(dateText, referenceDate); ok {
			resolved = &d
		}
	}

	if interval != nil {
		if resolved == nil {
			return nil, RejectDateRequiredForFilter
		}
		if !interval.Contains(*resolved) {
			return nil, RejectOutsideDateWindow
		}
	}

	publisher = strings.TrimSpace(publisher)
	if publisher == "" {
		publisher = "N/A"
	}

	return &ArticleRecord{
		Publisher:      publisher,
		Title:          title,
		URL:            fullURL,
		DateTextOnPage: dateText,
		ResolvedDate:   resolved,
	}, RejectNone
}
