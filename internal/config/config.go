// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// DefaultPath is used when no config file is given on the command line.
const DefaultPath = "config.yaml"

type Config struct {
	API struct {
		BaseURL    string `yaml:"baseURL"`
		TopNPath   string `yaml:"topNPath"`
		SearchPath string `yaml:"searchPath"`
	} `yaml:"api"`

	HTTPClient struct {
		Timeout             int    `yaml:"timeout"`
		UserAgent           string `yaml:"userAgent"`
		LegacyAcceptsHeader bool   `yaml:"legacyAcceptsHeader"`
	} `yaml:"httpClient"`

	TopN struct {
		Count int `yaml:"count"`
		Days  int `yaml:"days"`
	} `yaml:"topN"`

	Widgets struct {
		// GuardStale is a pointer so that an explicit false survives setDefaults.
		GuardStale      *bool `yaml:"guardStale"`
		ExposeRawErrors bool  `yaml:"exposeRawErrors"`
	} `yaml:"widgets"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Page struct {
		File string `yaml:"file"`
	} `yaml:"page"`
}

// Load reads and parses the configuration at path
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration pointing at baseURL with every other field
// defaulted. It is used when no config file exists.
func Default(baseURL string) *Config {
	var cfg Config
	cfg.API.BaseURL = baseURL
	setDefaults(&cfg)
	return &cfg
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.API.TopNPath == "" {
		cfg.API.TopNPath = "/_api/v1/top_n"
	}
	if cfg.API.SearchPath == "" {
		cfg.API.SearchPath = "/_api/v1/search"
	}
	if cfg.HTTPClient.UserAgent == "" {
		cfg.HTTPClient.UserAgent = "linkwidgets/1.0"
	}
	if cfg.TopN.Count == 0 {
		cfg.TopN.Count = 10
	}
	if cfg.TopN.Days == 0 {
		cfg.TopN.Days = 1
	}
	if cfg.Widgets.GuardStale == nil {
		guard := true
		cfg.Widgets.GuardStale = &guard
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseURL is required")
	}
	if c.TopN.Count <= 0 {
		return fmt.Errorf("topN.count must be positive")
	}
	if c.TopN.Days <= 0 {
		return fmt.Errorf("topN.days must be positive")
	}
	if c.HTTPClient.Timeout < 0 {
		return fmt.Errorf("httpClient.timeout must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// StaleGuardEnabled reports whether widgets drop responses that were
// superseded by a later trigger.
func (c *Config) StaleGuardEnabled() bool {
	return c.Widgets.GuardStale == nil || *c.Widgets.GuardStale
}

// ParseLevel maps a config level name onto a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
