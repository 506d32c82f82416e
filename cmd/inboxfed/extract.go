package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pevans/inboxfed"
	"github.com/pevans/inboxfed/config"
	"github.com/pevans/inboxfed/export"
	"github.com/pevans/inboxfed/inbox"
	"github.com/pevans/inboxfed/pubs"
	"github.com/pevans/inboxfed/session"
)

func handleExtract(cfg *config.FileConfig, logger *log.Logger, args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	file := fs.String("file", "", "Extract from a saved inbox HTML file instead of fetching")
	pageURL := fs.String("url", cfg.InboxURL, "Inbox page URL to fetch")
	feedURL := fs.String("feed", "", "Extract from an RSS/Atom feed URL instead of the inbox page")
	pub := fs.String("pub", "", "Extract from a tracked publication's feed (ID or name)")
	query := fs.String("query", defaultQuery(cfg), "Date filter query (LAST N DAYS, <start> TO <end>, or a single date)")
	out := fs.String("out", cfg.OutputDir, "Output directory for the CSV file")
	noSave := fs.Bool("no-save", false, "Print the report without writing a CSV file")
	fs.Parse(args)

	store, err := session.NewStore(cfg.Session.DBPath)
	if err != nil {
		logger.Fatal("failed to open session store", "err", err)
	}
	defer store.Close()

	// Pre-flight: the pipeline itself does not need a session, but a
	// logged-out fetch of the live inbox returns a login wall instead
	// of articles.
	if !cfg.Session.AssumeLoggedIn && *file == "" && *feedURL == "" && *pub == "" {
		loggedIn, err := store.LoggedIn()
		if err != nil {
			logger.Fatal("failed to read session state", "err", err)
		}
		if !loggedIn {
			logger.Warn("no authenticated session recorded; the inbox page may show a login wall")
		}
	}

	referenceDate := time.Now()
	runExtraction(cfg, logger, store, extractOptions{
		file:    *file,
		pageURL: *pageURL,
		feedURL: *feedURL,
		pub:     *pub,
		query:   *query,
		outDir:  *out,
		save:    !*noSave,
	}, referenceDate)
}

// extractOptions is the resolved input of one extraction run.
type extractOptions struct {
	file    string
	pageURL string
	feedURL string
	pub     string
	query   string
	outDir  string
	save    bool
}

// defaultQuery returns the configured filter query, or empty when
// filtering is disabled in the config.
func defaultQuery(cfg *config.FileConfig) string {
	if !cfg.Filter.Enabled {
		return ""
	}
	return cfg.Filter.Query
}

// runExtraction gathers raw items from the selected source, runs the
// pipeline, prints the report, and exports the CSV. Shared between the
// extract subcommand and the interactive menu.
func runExtraction(cfg *config.FileConfig, logger *log.Logger, store *session.Store, opts extractOptions, referenceDate time.Time) {
	items, err := gatherItems(cfg, logger, opts)
	if err != nil {
		logger.Fatal("failed to gather items", "err", err)
	}

	extractor, err := inboxfed.NewExtractor(cfg.BaseURL, cfg.Selectors.PathMarker)
	if err != nil {
		logger.Fatal("failed to create extractor", "err", err)
	}

	pipeline := inboxfed.NewPipeline(extractor, logger)
	records, stats := pipeline.Run(items, opts.query, referenceDate)

	if stats.Found == 0 {
		logger.Warn("no article elements found; check the item selector or the source URL")
	} else if stats.Accepted == 0 {
		logger.Warn("elements found, but no articles passed filters or had valid data",
			"found", stats.Found, "rejected", stats.Rejected())
	}
	for reason, n := range stats.Rejections {
		logger.Debug("items rejected", "reason", reason.String(), "count", n)
	}

	if err := export.WriteReport(os.Stdout, records); err != nil {
		logger.Fatal("failed to write report", "err", err)
	}

	outputPath := ""
	if opts.save {
		outputPath, err = export.SaveCSV(opts.outDir, records, referenceDate)
		if err != nil {
			logger.Fatal("failed to save CSV", "err", err)
		}
		fmt.Printf("\nSaved extracted articles to file: %s\n", outputPath)
	}

	if err := store.RecordRun(session.RunInfo{
		At:       referenceDate,
		Found:    stats.Found,
		Accepted: stats.Accepted,
		Query:    opts.query,
		Output:   outputPath,
	}); err != nil {
		logger.Warn("failed to record run", "err", err)
	}
}

// gatherItems produces the raw item sequence from whichever source the
// options select: a tracked publication's feed, an explicit feed URL,
// a cached HTML file, or the live inbox page.
func gatherItems(cfg *config.FileConfig, logger *log.Logger, opts extractOptions) ([]inboxfed.RawItem, error) {
	switch {
	case opts.pub != "":
		return gatherPublicationItems(cfg, logger, opts.pub)

	case opts.feedURL != "":
		feed, err := inboxfed.FetchFeed(opts.feedURL)
		if err != nil {
			return nil, err
		}
		return inboxfed.FeedItems(feed), nil

	case opts.file != "":
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, fmt.Errorf("failed to open HTML file: %w", err)
		}
		defer f.Close()
		doc, err := inbox.LoadHTML(f)
		if err != nil {
			return nil, err
		}
		return inbox.NewSource(doc, cfg.Selectors).Items(), nil

	default:
		logger.Info("fetching inbox page", "url", opts.pageURL)
		doc, err := inbox.FetchHTML(opts.pageURL)
		if err != nil {
			return nil, err
		}
		return inbox.NewSource(doc, cfg.Selectors).Items(), nil
	}
}

// gatherPublicationItems resolves a tracked publication by ID or name
// and pulls its feed.
func gatherPublicationItems(cfg *config.FileConfig, logger *log.Logger, ref string) ([]inboxfed.RawItem, error) {
	store, err := pubs.NewStore(cfg.Session.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open publication store: %w", err)
	}
	defer store.Close()

	pub, err := resolvePublication(store, ref)
	if err != nil {
		return nil, err
	}

	logger.Info("fetching publication feed", "name", pub.Name, "url", pub.FeedURL)
	feed, err := inboxfed.FetchFeed(pub.FeedURL)
	if err != nil {
		return nil, err
	}
	if err := store.TouchFetched(pub.ID, time.Now()); err != nil {
		logger.Warn("failed to record feed fetch", "err", err)
	}
	return inboxfed.FeedItems(feed), nil
}

func resolvePublication(store *pubs.Store, ref string) (*pubs.Publication, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return store.Get(id)
	}

	list, err := store.List()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if strings.EqualFold(list[i].Name, ref) {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", pubs.ErrPublicationNotFound, ref)
}
