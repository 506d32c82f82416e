// Package inbox supplies RawItems from an inbox page view, either
// fetched live or loaded from a cached copy. It is the item-source
// collaborator of the extraction pipeline: it locates article card
// elements and exposes their fields, leaving all interpretation
// (date normalization, filtering, URL resolution) to the core.
package inbox

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/inboxfed"
	"github.com/pevans/inboxfed/scraper"
)

// FetchHTML fetches and parses the page at url.
func FetchHTML(url string) (*goquery.Document, error) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "inboxfed/1.0 (article metadata extractor)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// LoadHTML parses a cached page from r, e.g. a saved inbox snapshot.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Source wraps a parsed inbox page and yields its article cards.
type Source struct {
	doc *goquery.Document
	cfg scraper.Config
}

// NewSource creates a source over a parsed document using the given
// selector configuration.
func NewSource(doc *goquery.Document, cfg scraper.Config) *Source {
	return &Source{doc: doc, cfg: cfg.WithDefaults()}
}

// Items returns one RawItem per matched card element, in page order.
// A page with no matching elements yields an empty slice; the caller's
// diagnostics distinguish that from "nothing passed the filters".
func (s *Source) Items() []inboxfed.RawItem {
	var items []inboxfed.RawItem
	s.doc.Find(s.cfg.ItemSelector).Each(func(_ int, sel *goquery.Selection) {
		items = append(items, &Item{sel: sel, cfg: s.cfg})
	})
	return items
}

// matcher is one extraction strategy over a card element. It reports
// the extracted text and whether the strategy applied at all.
type matcher func(*goquery.Selection) (string, bool)

// attrMatcher extracts an attribute from the first element matching
// selector.
func attrMatcher(selector, attr string) matcher {
	return func(sel *goquery.Selection) (string, bool) {
		found := sel.Find(selector).First()
		if found.Length() == 0 {
			return "", false
		}
		return found.Attr(attr)
	}
}

// textMatcher extracts trimmed text from the first element matching
// selector.
func textMatcher(selector string) matcher {
	return func(sel *goquery.Selection) (string, bool) {
		found := sel.Find(selector).First()
		if found.Length() == 0 {
			return "", false
		}
		return strings.TrimSpace(found.Text()), true
	}
}

// firstMatch probes matchers in order; the first success wins.
func firstMatch(sel *goquery.Selection, matchers []matcher) (string, bool) {
	for _, m := range matchers {
		if v, ok := m(sel); ok {
			return v, true
		}
	}
	return "", false
}

// Item adapts one matched card element to the RawItem contract.
// Missing fields are reported as empty strings, not errors; the
// extractor decides which fields are required.
type Item struct {
	sel *goquery.Selection
	cfg scraper.Config
}

// Href probes the configured link selectors in priority order.
func (it *Item) Href() (string, error) {
	matchers := make([]matcher, 0, len(it.cfg.LinkSelectors))
	for _, selector := range it.cfg.LinkSelectors {
		matchers = append(matchers, attrMatcher(selector, "href"))
	}
	v, _ := firstMatch(it.sel, matchers)
	return v, nil
}

func (it *Item) Title() (string, error) {
	v, _ := textMatcher(it.cfg.TitleSelector)(it.sel)
	return v, nil
}

func (it *Item) DateText() (string, error) {
	v, _ := textMatcher(it.cfg.DateSelector)(it.sel)
	return v, nil
}

func (it *Item) Publisher() (string, error) {
	v, _ := textMatcher(it.cfg.PublisherSelector)(it.sel)
	return v, nil
}
