package inboxfed

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// RunStats summarizes one pipeline run: how many items the source
// produced, how many records were accepted, and why the rest were
// dropped. Counters are owned by the run; concurrent runs each get
// their own.
type RunStats struct {
	RunID          uuid.UUID
	Found          int
	Accepted       int
	Rejections     map[RejectReason]int
	Query          FilterQuery
	FilterDisabled bool // a query was supplied but did not parse
}

// Rejected returns the total number of dropped items.
func (s RunStats) Rejected() int {
	total := 0
	for _, n := range s.Rejections {
		total += n
	}
	return total
}

// Pipeline orchestrates one extraction run over a sequence of raw
// items. It is synchronous and processes each item to completion
// before the next; an empty result is a valid, non-error outcome.
type Pipeline struct {
	extractor *Extractor
	logger    *log.Logger
}

// NewPipeline creates a pipeline around the given extractor. A nil
// logger falls back to the package default.
func NewPipeline(extractor *Extractor, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{extractor: extractor, logger: logger}
}

// Run parses the filter query once, then extracts every raw item in
// its given order, appending accepted records in that order. An
// invalid query disables filtering for the run with a warning instead
// of failing it. Per-item rejections are counted, never re-raised.
func (p *Pipeline) Run(items []RawItem, query string, referenceDate time.Time) ([]ArticleRecord, RunStats) {
	stats := RunStats{
		RunID:      uuid.New(),
		Found:      len(items),
		Rejections: make(map[RejectReason]int),
	}

	fq, err := ParseFilterQuery(query, referenceDate)
	if err != nil {
		p.logger.Warn("invalid date filter query, filtering disabled for this run",
			"query", query, "err", err)
		fq = FilterQuery{Kind: FilterNone}
		stats.FilterDisabled = true
	}
	stats.Query = fq
	if fq.Interval != nil {
		p.logger.Info("date filter active",
			"start", fq.Interval.Start.Format("2006-01-02"),
			"end", fq.Interval.End.Format("2006-01-02"))
	}

	records := make([]ArticleRecord, 0, len(items))
	for _, raw := range items {
		record, reason := p.extractor.Extract(raw, referenceDate, fq.Interval)
		if reason != RejectNone {
			stats.Rejections[reason]++
			continue
		}
		records = append(records, *record)
	}
	stats.Accepted = len(records)

	p.logger.Info("extraction finished",
		"run_id", stats.RunID, "found", stats.Found,
		"accepted", stats.Accepted, "rejected", stats.Rejected())
	return records, stats
}
