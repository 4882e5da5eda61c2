package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Category is one portfolio group: a label and its tickers in display order.
type Category struct {
	Name    string   `yaml:"category"`
	Tickers []string `yaml:"tickers"`
}

// Config holds all application configuration.
type Config struct {
	Portfolio       []Category `yaml:"portfolio"`
	LookbackYears   int        `yaml:"lookback_years"`
	MonthsDisplayed int        `yaml:"months_displayed"`
	Timezone        string     `yaml:"timezone"`
	Concurrency     int        `yaml:"concurrency"`
	Output          struct {
		HTMLPath string `yaml:"html_path"`
		CSVPath  string `yaml:"csv_path"`
	} `yaml:"output"`
	Schedule struct {
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error: the built-in
// defaults reproduce the reference portfolio.
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
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_YEARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LookbackYears = n
		}
	}
	if v := os.Getenv("MONTHS_DISPLAYED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MonthsDisplayed = n
		}
	}
	if v := os.Getenv("OUTPUT_HTML"); v != "" {
		cfg.Output.HTMLPath = v
	}
	if v := os.Getenv("OUTPUT_CSV"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("REPORT_CRON"); v != "" {
		cfg.Schedule.ReportCron = v
	}

	// Defaults
	if len(cfg.Portfolio) == 0 {
		cfg.Portfolio = DefaultPortfolio()
	}
	if cfg.LookbackYears == 0 {
		cfg.LookbackYears = 10
	}
	if cfg.MonthsDisplayed == 0 {
		cfg.MonthsDisplayed = 120
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Taipei"
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 1
	}
	if cfg.Output.HTMLPath == "" && cfg.Output.CSVPath == "" {
		cfg.Output.HTMLPath = "index.html"
		cfg.Output.CSVPath = "monthly.csv"
	}
	if cfg.Schedule.ReportCron == "" {
		// Saturday 09:00, after the US Friday close.
		cfg.Schedule.ReportCron = "0 0 9 * * 6"
	}

	return cfg, nil
}

// DefaultPortfolio returns the built-in category/ticker mapping.
func DefaultPortfolio() []Category {
	return []Category{
		{
			Name: "Index / Dividend / Bond ETF",
			Tickers: []string{
				"IVV", "SPY", "VTI", "VIG", "VYM", "VDC",
				"VCR", "VTV", "QQQ", "FVD", "VNQ", "LQD",
			},
		},
		{
			Name:    "Core Holdings",
			Tickers: []string{"BHP", "NOV", "ADM"},
		},
		{
			Name: "Energy Majors & High Dividend",
			Tickers: []string{
				"XOM", "CVX", "BP", "SHEL",
				"PFE", "JNJ", "PG", "ABBV", "BMY",
				"MSFT", "IBM", "QCOM", "CSCO",
				"WFC", "VLO", "BRK.B",
			},
		},
	}
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if len(c.Portfolio) == 0 {
		return fmt.Errorf("portfolio must not be empty")
	}
	for _, cat := range c.Portfolio {
		if cat.Name == "" {
			return fmt.Errorf("portfolio category without a name")
		}
		if len(cat.Tickers) == 0 {
			return fmt.Errorf("category %q has no tickers", cat.Name)
		}
	}
	if c.LookbackYears <= 0 {
		return fmt.Errorf("lookback_years must be positive")
	}
	if c.MonthsDisplayed <= 0 {
		return fmt.Errorf("months_displayed must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.Output.HTMLPath == "" && c.Output.CSVPath == "" {
		return fmt.Errorf("at least one output path is required")
	}
	return nil
}

// Location resolves the configured timezone. Validate must have passed.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
