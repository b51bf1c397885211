package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"DataIngest/internal/model"

	"gopkg.in/yaml.v3"
)

const (
	StockPricesFile      = "stock_prices.csv"
	NewsInstructionsFile = "news_data_readme.txt"
	defaultProviderURL   = "https://query1.finance.yahoo.com"
	defaultRawDataDir    = "data/raw"
	defaultSymbol        = "AAPL"
	defaultStartDate     = "2015-01-01"
	defaultEndDate       = "2024-12-31"
)

// Config holds all application configuration.
type Config struct {
	Symbol     string `yaml:"symbol"`
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	RawDataDir string `yaml:"raw_data_dir"`
	Provider   struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"provider"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	FailOnFetchError bool   `yaml:"fail_on_fetch_error"`
	Proxy            string `yaml:"proxy"`

	start time.Time
	end   time.Time
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("INGEST_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("INGEST_START_DATE"); v != "" {
		cfg.StartDate = v
	}
	if v := os.Getenv("INGEST_END_DATE"); v != "" {
		cfg.EndDate = v
	}
	if v := os.Getenv("RAW_DATA_DIR"); v != "" {
		cfg.RawDataDir = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("FAIL_ON_FETCH_ERROR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FailOnFetchError = b
		}
	}

	// Defaults
	if cfg.Symbol == "" {
		cfg.Symbol = defaultSymbol
	}
	if cfg.StartDate == "" {
		cfg.StartDate = defaultStartDate
	}
	if cfg.EndDate == "" {
		cfg.EndDate = defaultEndDate
	}
	if cfg.RawDataDir == "" {
		cfg.RawDataDir = defaultRawDataDir
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = defaultProviderURL
	}

	return cfg, nil
}

// Validate checks required fields and parses the date range.
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.RawDataDir == "" {
		return fmt.Errorf("raw_data_dir is required")
	}
	start, err := time.Parse(model.DateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("start_date: %w", err)
	}
	end, err := time.Parse(model.DateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("end_date: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_date %s must be before end_date %s", c.StartDate, c.EndDate)
	}
	c.start, c.end = start, end
	return nil
}

// Start returns the parsed start date (UTC midnight). Valid after Validate.
func (c *Config) Start() time.Time { return c.start }

// End returns the parsed, exclusive end date (UTC midnight). Valid after Validate.
func (c *Config) End() time.Time { return c.end }

// StockPricesPath is where the price table is written.
func (c *Config) StockPricesPath() string {
	return filepath.Join(c.RawDataDir, StockPricesFile)
}

// NewsInstructionsPath is where the manual-download instructions are written.
func (c *Config) NewsInstructionsPath() string {
	return filepath.Join(c.RawDataDir, NewsInstructionsFile)
}
