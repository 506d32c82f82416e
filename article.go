package inboxfed

import "time"

// RawItem is one unprocessed entry from the item source: an opaque
// handle over a page element or feed entry with optional text fields.
// Implementations back each accessor with live lookups, so any of them
// may fail if the underlying source becomes unavailable mid-read; the
// extractor treats such a failure as a per-item rejection, never as a
// batch failure.
type RawItem interface {
	Href() (string, error)
	Title() (string, error)
	DateText() (string, error)
	Publisher() (string, error)
}

// ArticleRecord is one extracted article. Title and URL are always
// non-empty for any record that leaves the pipeline; Publisher falls
// back to "N/A" when the source showed none.
type ArticleRecord struct {
	Publisher      string     `json:"publisher"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	DateTextOnPage string     `json:"date_text_on_page,omitempty"`
	ResolvedDate   *time.Time `json:"resolved_date,omitempty"`
}

// RejectReason classifies why a single item was dropped. Rejection is
// a per-item outcome, not an error: the run always continues with the
// next item.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectMissingRequiredField
	RejectNotArticleLink
	RejectDateRequiredForFilter
	RejectOutsideDateWindow
	RejectSourceUnavailable
)

// String returns a stable diagnostic name for the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "accepted"
	case RejectMissingRequiredField:
		return "missing_required_field"
	case RejectNotArticleLink:
		return "not_an_article_link"
	case RejectDateRequiredForFilter:
		return "date_required_for_filter"
	case RejectOutsideDateWindow:
		return "outside_date_window"
	case RejectSourceUnavailable:
		return "source_unavailable"
	}
	return "unknown"
}
