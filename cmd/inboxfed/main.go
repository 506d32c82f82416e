package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pevans/inboxfed/config"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "inboxfed",
	})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := loadConfig(logger)

	subcommand := os.Args[1]
	switch subcommand {
	case "extract":
		handleExtract(cfg, logger, os.Args[2:])
	case "menu":
		runMenu(cfg, logger)
	case "pubs":
		if len(os.Args) < 3 {
			printPubsUsage()
			os.Exit(1)
		}
		handlePubsCommand(cfg, os.Args[2], os.Args[3:])
	case "session":
		if len(os.Args) < 3 {
			printSessionUsage()
			os.Exit(1)
		}
		handleSessionCommand(cfg, os.Args[2])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

// loadConfig resolves the file config, defaults, and env overrides.
func loadConfig(logger *log.Logger) *config.FileConfig {
	var (
		fileCfg *config.FileConfig
		err     error
	)
	if path := os.Getenv("INBOXFED_CONFIG"); path != "" {
		fileCfg, err = config.LoadConfigFrom(path)
	} else {
		fileCfg, err = config.LoadConfigFile()
	}
	if err != nil {
		logger.Fatal("failed to load config file", "err", err)
	}

	cfg := config.Resolve(fileCfg)
	cfg.Session.DBPath = getEnv("INBOXFED_DB", cfg.Session.DBPath)
	cfg.OutputDir = getEnv("INBOXFED_OUTPUT_DIR", cfg.OutputDir)
	return cfg
}

func printUsage() {
	fmt.Println("inboxfed - article metadata extractor for a paginated web inbox")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  inboxfed <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract    Run one extraction pass and export the results")
	fmt.Println("  menu       Interactive menu")
	fmt.Println("  pubs       Manage tracked publications")
	fmt.Println("  session    Inspect or change the persisted session flag")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  INBOXFED_CONFIG      Path to config file (default: ~/.inboxfed/config.yaml)")
	fmt.Println("  INBOXFED_DB          Path to the state database (default: inboxfed.db)")
	fmt.Println("  INBOXFED_OUTPUT_DIR  Directory for exported CSV files (default: .)")
}

func printPubsUsage() {
	fmt.Println("inboxfed pubs - Manage tracked publications")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  inboxfed pubs <action> [arguments]")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  list       List all publications")
	fmt.Println("  add        Add a publication (--name, --feed)")
	fmt.Println("  delete     Delete a publication by ID")
	fmt.Println("  help       Show this help message")
}

func printSessionUsage() {
	fmt.Println("inboxfed session - Inspect or change the persisted session flag")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  inboxfed session <action>")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  show       Show the current session state and last run")
	fmt.Println("  login      Mark an authenticated session as available")
	fmt.Println("  logout     Clear the session flag")
}
