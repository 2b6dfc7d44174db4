package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `api:
  baseURL: "http://go.example.com"
httpClient:
  timeout: 5
  userAgent: "test-agent"
topN:
  count: 20
  days: 7
widgets:
  guardStale: false
  exposeRawErrors: true
log:
  level: debug`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://go.example.com" {
		t.Errorf("Expected BaseURL = http://go.example.com, got %s", cfg.API.BaseURL)
	}
	if cfg.API.TopNPath != "/_api/v1/top_n" {
		t.Errorf("Expected default TopNPath, got %s", cfg.API.TopNPath)
	}
	if cfg.API.SearchPath != "/_api/v1/search" {
		t.Errorf("Expected default SearchPath, got %s", cfg.API.SearchPath)
	}
	if cfg.HTTPClient.Timeout != 5 {
		t.Errorf("Expected Timeout = 5, got %d", cfg.HTTPClient.Timeout)
	}
	if cfg.TopN.Count != 20 || cfg.TopN.Days != 7 {
		t.Errorf("Expected TopN 20/7, got %d/%d", cfg.TopN.Count, cfg.TopN.Days)
	}
	if cfg.StaleGuardEnabled() {
		t.Error("Expected stale guard to be disabled")
	}
	if !cfg.Widgets.ExposeRawErrors {
		t.Error("Expected ExposeRawErrors = true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default("http://localhost:8080")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.TopN.Count != 10 || cfg.TopN.Days != 1 {
		t.Errorf("Expected TopN defaults 10/1, got %d/%d", cfg.TopN.Count, cfg.TopN.Days)
	}
	if !cfg.StaleGuardEnabled() {
		t.Error("Expected stale guard to be enabled by default")
	}
	if cfg.HTTPClient.Timeout != 0 {
		t.Errorf("Expected no timeout by default, got %d", cfg.HTTPClient.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return Default("http://localhost") }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "non-positive count",
			mutate:  func(c *Config) { c.TopN.Count = 0 },
			wantErr: true,
		},
		{
			name:    "non-positive days",
			mutate:  func(c *Config) { c.TopN.Days = -1 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.HTTPClient.Timeout = -3 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "verbose", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}
