// Package export serializes extracted article records to flat files:
// a delimited CSV and a human-readable text report. It consumes the
// pipeline's structured records and owns all output formatting.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pevans/inboxfed"
)

// csvHeader is the column layout of exported files.
var csvHeader = []string{"publication", "title", "url", "date_on_page", "parsed_date"}

// FileName returns the output file name for a run started at now,
// e.g. "UR_20240610-1432.csv".
func FileName(now time.Time) string {
	return "UR_" + now.Format("20060102-1504") + ".csv"
}

// WriteCSV writes records to w as CSV with a header row. Records with
// no resolved date carry "N/A" in the parsed_date column.
func WriteCSV(w io.Writer, records []inboxfed.ArticleRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		parsed := "N/A"
		if record.ResolvedDate != nil {
			parsed = record.ResolvedDate.Format("2006-01-02")
		}
		row := []string{
			record.Publisher,
			record.Title,
			record.URL,
			record.DateTextOnPage,
			parsed,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// SaveCSV writes records into dir under the run's timestamped file
// name and returns the path written.
func SaveCSV(dir string, records []inboxfed.ArticleRecord, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return "", err
	}
	return path, nil
}
