package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pevans/inboxfed/scraper"
	"gopkg.in/yaml.v3"
)

// FilterConfig holds the persisted date-filter settings. Query follows
// the filter grammar ("LAST 7 DAYS", "06-01 TO 06-05", a single date)
// or is empty for no filtering.
type FilterConfig struct {
	Enabled bool   `yaml:"enabled"`
	Query   string `yaml:"query"`
}

// SessionConfig holds session bookkeeping settings. AssumeLoggedIn
// skips the pre-flight session check; DBPath locates the SQLite state
// database.
type SessionConfig struct {
	AssumeLoggedIn bool   `yaml:"assume_logged_in"`
	DBPath         string `yaml:"db_path"`
}

// FileConfig represents the structure of ~/.inboxfed/config.yaml.
type FileConfig struct {
	InboxURL  string         `yaml:"inbox_url"`
	BaseURL   string         `yaml:"base_url"`
	OutputDir string         `yaml:"output_dir"`
	Filter    FilterConfig   `yaml:"filter"`
	Session   SessionConfig  `yaml:"session"`
	Selectors scraper.Config `yaml:"selectors"`
}

// Default returns the built-in configuration for the source site.
func Default() *FileConfig {
	return &FileConfig{
		InboxURL:  "https://substack.com/inbox",
		BaseURL:   "https://substack.com",
		OutputDir: ".",
		Filter:    FilterConfig{Enabled: false},
		Session: SessionConfig{
			AssumeLoggedIn: true,
			DBPath:         "inboxfed.db",
		},
		Selectors: scraper.DefaultConfig(),
	}
}

// Resolve fills any unset field of cfg from Default. A nil cfg yields
// the defaults unchanged.
func Resolve(cfg *FileConfig) *FileConfig {
	def := Default()
	if cfg == nil {
		return def
	}
	if cfg.InboxURL == "" {
		cfg.InboxURL = def.InboxURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.Session.DBPath == "" {
		cfg.Session.DBPath = def.Session.DBPath
	}
	cfg.Selectors = cfg.Selectors.WithDefaults()
	return cfg
}

// LoadConfigFile loads configuration from ~/.inboxfed/config.yaml.
// Returns nil if the file doesn't exist (not an error). Returns error
// if the file exists but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return LoadConfigFrom(filepath.Join(homeDir, ".inboxfed", "config.yaml"))
}

// LoadConfigFrom loads configuration from an explicit path with the
// same missing-file semantics as LoadConfigFile.
func LoadConfigFrom(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
