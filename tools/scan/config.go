package main

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/macshonle/go-wiktscan"
)

// Config holds scan run settings.
type Config struct {
	Strategy       string    `yaml:"strategy"        env:"WIKTSCAN_STRATEGY"        env-default:"sequential"`
	Workers        int       `yaml:"workers"         env:"WIKTSCAN_WORKERS"`
	BatchSize      int       `yaml:"batch_size"      env:"WIKTSCAN_BATCH_SIZE"      env-default:"1000"`
	QueueSize      int       `yaml:"queue_size"      env:"WIKTSCAN_QUEUE_SIZE"      env-default:"10000"`
	Limit          int64     `yaml:"limit"           env:"WIKTSCAN_LIMIT"`
	PageLimit      int64     `yaml:"page_limit"      env:"WIKTSCAN_PAGE_LIMIT"`
	Index          string    `yaml:"index"           env:"WIKTSCAN_INDEX"`
	Taxonomy       string    `yaml:"taxonomy"        env:"WIKTSCAN_TAXONOMY"`
	SyllableReport bool      `yaml:"syllable_report" env:"WIKTSCAN_SYLLABLE_REPORT"`
	ProgressEvery  int64     `yaml:"progress_every"  env:"WIKTSCAN_PROGRESS_EVERY"  env-default:"10000"`
	Quiet          bool      `yaml:"quiet"           env:"WIKTSCAN_QUIET"`
	Log            LogConfig `yaml:"log"`
}

// LogConfig selects the scan log handler.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WIKTSCAN_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WIKTSCAN_LOG_FORMAT" env-default:"text"`
}

// LoadConfig reads scan configuration from a YAML file and environment
// variables.  Priority: ENV > YAML > defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings a run can't start with.
func (c *Config) Validate() error {
	if _, err := wiktscan.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	for _, v := range []struct {
		name string
		n    int64
	}{
		{"workers", int64(c.Workers)},
		{"batch_size", int64(c.BatchSize)},
		{"queue_size", int64(c.QueueSize)},
		{"limit", c.Limit},
		{"page_limit", c.PageLimit},
		{"progress_every", c.ProgressEvery},
	} {
		if v.n < 0 {
			return fmt.Errorf("%s must not be negative, got %d", v.name, v.n)
		}
	}
	if c.BatchSize > wiktscan.MaxBatchSize {
		return fmt.Errorf("batch_size must be at most %d, got %d", wiktscan.MaxBatchSize, c.BatchSize)
	}
	if c.QueueSize > wiktscan.MaxQueueSize {
		return fmt.Errorf("queue_size must be at most %d, got %d", wiktscan.MaxQueueSize, c.QueueSize)
	}
	return nil
}

// RunConfig builds the library configuration for a run.
func (c *Config) RunConfig() (wiktscan.Config, error) {
	strategy, err := wiktscan.ParseStrategy(c.Strategy)
	if err != nil {
		return wiktscan.Config{}, err
	}
	rc := wiktscan.Config{
		Strategy:       strategy,
		Workers:        c.Workers,
		BatchSize:      c.BatchSize,
		QueueSize:      c.QueueSize,
		Limit:          c.Limit,
		PageLimit:      c.PageLimit,
		SyllableReport: c.SyllableReport,
		ProgressEvery:  c.ProgressEvery,
	}
	if c.Taxonomy != "" {
		rc.Taxonomy, err = wiktscan.LoadTaxonomy(c.Taxonomy)
		if err != nil {
			return wiktscan.Config{}, fmt.Errorf("taxonomy: %w", err)
		}
	}
	return rc, nil
}
