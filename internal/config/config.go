// Package config loads phonsim settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"phon-similarity/internal/cache"
	"phon-similarity/internal/ingest"
	"phon-similarity/internal/match"
	"phon-similarity/internal/score"
)

// Config is the top-level settings file.
type Config struct {
	Table   TableConfig   `yaml:"table"`
	Scoring ScoringConfig `yaml:"scoring"`
	Cache   CacheConfig   `yaml:"cache"`
}

// TableConfig locates the feature sheet.
type TableConfig struct {
	Path          string `yaml:"path"`
	KeyColumn     *int   `yaml:"key_column,omitempty"`
	FeatureOffset int    `yaml:"feature_offset,omitempty"`
}

// ScoringConfig controls batch scoring.
type ScoringConfig struct {
	Mode    string `yaml:"mode"`
	Workers int    `yaml:"workers"`
}

// CacheConfig selects the result cache. An empty RedisAddr means an in-process cache.
type CacheConfig struct {
	RedisAddr string        `yaml:"redis_addr,omitempty"`
	RedisDB   int           `yaml:"redis_db,omitempty"`
	Prefix    string        `yaml:"prefix,omitempty"`
	TTL       time.Duration `yaml:"ttl,omitempty"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Table.KeyColumn == nil {
		col := ingest.DefaultKeyColumn
		c.Table.KeyColumn = &col
	}

	if c.Table.FeatureOffset == 0 {
		c.Table.FeatureOffset = ingest.DefaultFeatureOffset
	}

	if c.Scoring.Mode == "" {
		c.Scoring.Mode = match.ModePhonetic.String()
	}

	if c.Scoring.Workers <= 0 {
		c.Scoring.Workers = score.DefaultWorkers
	}

	if c.Cache.Prefix == "" {
		c.Cache.Prefix = cache.DefaultPrefix
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := match.ParseMode(c.Scoring.Mode); err != nil {
		return fmt.Errorf("scoring.mode: %w", err)
	}

	if *c.Table.KeyColumn < 0 || *c.Table.KeyColumn >= c.Table.FeatureOffset {
		return fmt.Errorf("table.key_column %d must be in [0, %d)", *c.Table.KeyColumn, c.Table.FeatureOffset)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}

	return nil
}

// Mode returns the parsed scoring mode.
func (c *Config) Mode() match.Mode {
	m, err := match.ParseMode(c.Scoring.Mode)
	if err != nil {
		return match.ModePhonetic
	}

	return m
}

// IngestOptions returns the loader options described by the table section.
func (c *Config) IngestOptions() []ingest.Option {
	return []ingest.Option{
		ingest.WithKeyColumn(*c.Table.KeyColumn),
		ingest.WithFeatureOffset(c.Table.FeatureOffset),
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}
