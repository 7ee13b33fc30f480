package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config carries everything the pipeline needs at construction time. Nothing
// in the pipeline reads the environment directly; main loads a Config once
// and passes it down.
type Config struct {
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Fetch    FetchConfig    `yaml:"fetch" envconfig:"FETCH"`
	Tables   TablesConfig   `yaml:"tables" envconfig:"TABLES"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// DatabaseConfig selects the storage backend. Driver is either "postgres" or
// "sqlite3"; DSN is the driver-specific connection string (a connection URL
// for Postgres, a file path for SQLite).
type DatabaseConfig struct {
	Driver string `yaml:"driver" envconfig:"DRIVER"`
	DSN    string `yaml:"dsn" envconfig:"DSN"`
}

// FetchConfig configures the discovery/download collaborator.
type FetchConfig struct {
	// PageURL is the publisher landing page scraped for the latest workbook
	// link.
	PageURL string `yaml:"page_url" envconfig:"PAGE_URL"`
	// BaseURL prefixes relative links found on the landing page.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`
	// SourceURLs bypasses discovery: when set, these workbook URLs are
	// downloaded directly, in order. Used both as an override and as a
	// fallback list when the landing page stops matching.
	SourceURLs []string `yaml:"source_urls" envconfig:"SOURCE_URLS"`
	// Timeout bounds each HTTP request. There is no retry or backoff; a
	// failed retrieval aborts the run.
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// TablesConfig names the target relations the storage collaborator writes.
type TablesConfig struct {
	Staging string `yaml:"staging" envconfig:"STAGING"`
	Clean   string `yaml:"clean" envconfig:"CLEAN"`
}

// LoggingConfig mirrors the slog setup in internal/infrastructure.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load builds a Config by overlaying an optional YAML file and then AIHW_*
// environment variables onto the built-in defaults (environment wins).
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		if err := overlayFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := envconfig.Process("AIHW", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// overlayFile unmarshals the YAML file over cfg: fields absent from the file
// keep their current values.
func overlayFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func configFilePath() string {
	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.Fetch.PageURL == "" && len(c.Fetch.SourceURLs) == 0 {
		return fmt.Errorf("either a landing page URL or explicit source URLs must be configured")
	}

	if c.Tables.Staging == "" || c.Tables.Clean == "" {
		return fmt.Errorf("target relation names must not be empty")
	}
	if strings.EqualFold(c.Tables.Staging, c.Tables.Clean) {
		return fmt.Errorf("staging and clean relations must differ")
	}

	return nil
}

// Default returns the built-in configuration, used by tests and as the base
// for partial overrides.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "postgres"},
		Fetch: FetchConfig{
			PageURL: "https://www.aihw.gov.au/reports-data/myhospitals/separations/tables",
			BaseURL: "https://www.aihw.gov.au",
			Timeout: 60 * time.Second,
		},
		Tables: TablesConfig{
			Staging: "staging_admissions",
			Clean:   "clean_admissions",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/etl.log",
		},
	}
}
