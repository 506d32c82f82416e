package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pevans/inboxfed/config"
	"github.com/pevans/inboxfed/pubs"
)

func handlePubsCommand(cfg *config.FileConfig, action string, args []string) {
	store, err := pubs.NewStore(cfg.Session.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open publication store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch action {
	case "list":
		handlePubsList(store)
	case "add":
		handlePubsAdd(store, args)
	case "delete":
		handlePubsDelete(store, args)
	case "help", "--help", "-h":
		printPubsUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown pubs command: %s\n\n", action)
		printPubsUsage()
		os.Exit(1)
	}
}

func handlePubsList(store *pubs.Store) {
	list, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list publications: %v\n", err)
		os.Exit(1)
	}

	if len(list) == 0 {
		fmt.Println("No publications tracked.")
		return
	}

	fmt.Printf("%-36s %-30s %s\n", "ID", "NAME", "FEED URL")
	fmt.Println("----------------------------------------------------------------------------------------------------")
	for _, pub := range list {
		name := pub.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Printf("%-36s %-30s %s\n", pub.ID.String(), name, pub.FeedURL)
	}
}

func handlePubsAdd(store *pubs.Store, args []string) {
	fs := flag.NewFlagSet("pubs add", flag.ExitOnError)
	name := fs.String("name", "", "Publication name")
	feed := fs.String("feed", "", "Feed URL")
	fs.Parse(args)

	if *name == "" {
		fmt.Fprintf(os.Stderr, "Error: --name is required\n")
		fs.Usage()
		os.Exit(1)
	}
	if *feed == "" {
		fmt.Fprintf(os.Stderr, "Error: --feed is required\n")
		fs.Usage()
		os.Exit(1)
	}

	pub, err := store.Create(*name, *feed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create publication: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Created publication: %s\n", pub.ID.String())
	fmt.Printf("  Name: %s\n", pub.Name)
	fmt.Printf("  Feed: %s\n", pub.FeedURL)
}

func handlePubsDelete(store *pubs.Store, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: publication ID is required\n")
		fmt.Fprintf(os.Stderr, "Usage: inboxfed pubs delete <publication-id>\n")
		os.Exit(1)
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid publication ID: %v\n", err)
		os.Exit(1)
	}

	if err := store.Delete(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete publication: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Deleted publication: %s\n", args[0])
}
