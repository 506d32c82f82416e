package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pevans/inboxfed"
	"github.com/pevans/inboxfed/config"
	"github.com/pevans/inboxfed/session"
)

// runMenu drives the interactive text menu: run an extraction, change
// the filter query, toggle the persisted session flag, inspect the
// last run.
func runMenu(cfg *config.FileConfig, logger *log.Logger) {
	store, err := session.NewStore(cfg.Session.DBPath)
	if err != nil {
		logger.Fatal("failed to open session store", "err", err)
	}
	defer store.Close()

	query := defaultQuery(cfg)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println()
		fmt.Println("inboxfed menu")
		if query == "" {
			fmt.Println("  current date filter: (none)")
		} else {
			fmt.Printf("  current date filter: %s\n", query)
		}
		fmt.Println()
		fmt.Println("  1) Run extraction")
		fmt.Println("  2) Set date filter query")
		fmt.Println("  3) Toggle logged-in flag")
		fmt.Println("  4) Show last run")
		fmt.Println("  5) Quit")
		fmt.Print("> ")

		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			runExtraction(cfg, logger, store, extractOptions{
				pageURL: cfg.InboxURL,
				query:   query,
				outDir:  cfg.OutputDir,
				save:    true,
			}, time.Now())

		case "2":
			fmt.Print("Filter query (LAST N DAYS, <start> TO <end>, a single date, or empty to disable): ")
			if !scanner.Scan() {
				return
			}
			entered := strings.TrimSpace(scanner.Text())
			// Validate eagerly so a bad query is caught here rather
			// than silently disabling filtering mid-run.
			if entered != "" {
				if _, err := inboxfed.ParseFilterQuery(entered, time.Now()); err != nil {
					fmt.Printf("Invalid query: %v\n", err)
					continue
				}
			}
			query = entered

		case "3":
			loggedIn, err := store.LoggedIn()
			if err != nil {
				logger.Error("failed to read session state", "err", err)
				continue
			}
			if err := store.SetLoggedIn(!loggedIn); err != nil {
				logger.Error("failed to update session state", "err", err)
				continue
			}
			fmt.Printf("Logged-in flag is now %v\n", !loggedIn)

		case "4":
			printLastRun(store)

		case "5", "q", "quit", "exit":
			return

		default:
			fmt.Println("Unknown option.")
		}
	}
}

func printLastRun(store *session.Store) {
	info, err := store.LastRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read last run: %v\n", err)
		return
	}
	if info == nil {
		fmt.Println("No extraction run recorded yet.")
		return
	}

	fmt.Printf("Last run: %s\n", info.At.Format("2006-01-02 15:04"))
	fmt.Printf("  Found: %d, Accepted: %d\n", info.Found, info.Accepted)
	if info.Query != "" {
		fmt.Printf("  Filter query: %s\n", info.Query)
	}
	if info.Output != "" {
		fmt.Printf("  Output: %s\n", info.Output)
	}
}

func handleSessionCommand(cfg *config.FileConfig, action string) {
	store, err := session.NewStore(cfg.Session.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch action {
	case "show":
		loggedIn, err := store.LoggedIn()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read session state: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Logged in: %v\n", loggedIn)
		printLastRun(store)
	case "login":
		if err := store.SetLoggedIn(true); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to update session state: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session flag set.")
	case "logout":
		if err := store.SetLoggedIn(false); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to update session state: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session flag cleared.")
	case "help", "--help", "-h":
		printSessionUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown session command: %s\n\n", action)
		printSessionUsage()
		os.Exit(1)
	}
}
