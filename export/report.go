package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pevans/inboxfed"
)

// WriteReport writes a human-readable dump of the extracted records to
// w, one block per article.
func WriteReport(w io.Writer, records []inboxfed.ArticleRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No data was extracted or passed filters.")
		return err
	}

	if _, err := fmt.Fprintf(w, "--- Extracted %d Articles (after filters) ---\n", len(records)); err != nil {
		return err
	}
	for _, record := range records {
		parsed := "N/A"
		if record.ResolvedDate != nil {
			parsed = record.ResolvedDate.Format("2006-01-02")
		}

		fmt.Fprintf(w, "Publication: %s\n", record.Publisher)
		fmt.Fprintf(w, "Title: %s\n", record.Title)
		fmt.Fprintf(w, "URL: %s\n", record.URL)
		fmt.Fprintf(w, "Date on Page: %s (Parsed as: %s)\n", record.DateTextOnPage, parsed)
		if _, err := fmt.Fprintln(w, strings.Repeat("-", 20)); err != nil {
			return err
		}
	}
	return nil
}
