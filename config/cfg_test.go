package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Output.Pretty {
		t.Error("Pretty should be off by default")
	}
	if cfg.Output.Indent != "    " {
		t.Errorf("Indent = %q, want four spaces", cfg.Output.Indent)
	}
	if len(cfg.Output.Include) != 0 {
		t.Errorf("Include = %q, want none", cfg.Output.Include)
	}
	if cfg.Sources.Concurrency < 1 {
		t.Errorf("Concurrency = %d", cfg.Sources.Concurrency)
	}
	if cfg.Sources.Archive != "**/*.css" {
		t.Errorf("Archive = %q, want **/*.css", cfg.Sources.Archive)
	}
	if cfg.Sources.Fetch.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Sources.Fetch.Timeout)
	}
	if cfg.Sources.Fetch.UserAgent == "" {
		t.Error("UserAgent should have default value")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_Environment(t *testing.T) {
	t.Setenv("LSEL_USER_AGENT", "css-audit/2.0")
	t.Setenv("LSEL_ENCODING", "windows-1251")
	t.Setenv("LSEL_AUTH_TOKEN", "token")

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Sources.Fetch.UserAgent != "css-audit/2.0" {
		t.Errorf("UserAgent = %q", cfg.Sources.Fetch.UserAgent)
	}
	if cfg.Sources.Encoding != "windows-1251" {
		t.Errorf("Encoding = %q", cfg.Sources.Encoding)
	}
	if cfg.Sources.Fetch.AuthToken.Reveal() != "token" {
		t.Errorf("AuthToken was not picked up from environment")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
output:
  pretty: true
  indent: "  "
  include: [ids, types]
sources:
  concurrency: 2
  fetch:
    timeout: 5s
    user_agent: test-agent
    cache_size: 0
    max_size: 1024
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "test-report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if !cfg.Output.Pretty || cfg.Output.Indent != "  " {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if !slices.Equal(cfg.Output.Include, []string{"ids", "types"}) {
		t.Errorf("Include = %q", cfg.Output.Include)
	}
	if cfg.Sources.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Sources.Concurrency)
	}
	if cfg.Sources.Fetch.Timeout != 5*time.Second || cfg.Sources.Fetch.UserAgent != "test-agent" {
		t.Errorf("Fetch = %+v", cfg.Sources.Fetch)
	}
	if cfg.Sources.Fetch.CacheSize != 0 || cfg.Sources.Fetch.MaxSize != 1024 {
		t.Errorf("Fetch = %+v", cfg.Sources.Fetch)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("Mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `version: 1
output:
  pretty: true
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Output.Pretty {
		t.Error("Expected Pretty to be true from config file")
	}
	if cfg.Output.Indent != "    " || cfg.Sources.Fetch.Timeout != 30*time.Second {
		t.Errorf("defaults were lost: %+v", cfg)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\noutput:\n  pretty: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"invalid version", "version: 2\n"},
		{"zero concurrency", "version: 1\nsources:\n  concurrency: 0\n"},
		{"bad duration", "version: 1\nsources:\n  fetch:\n    timeout: soon\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
		{"empty include", "version: 1\noutput:\n  include: ['']\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "concurrency") {
		t.Errorf("Prepare() returned unexpected data:\n%s", data)
	}

	// Verify it's valid YAML by trying to unmarshal
	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Output.Include = []string{"classes"}
	cfg.Sources.Fetch.AuthToken = "do-not-show"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if strings.Contains(string(data), "do-not-show") {
		t.Errorf("Dump() leaks secret:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Sources.Fetch.Timeout != cfg.Sources.Fetch.Timeout {
		t.Errorf("Timeout after dump/load = %v, want %v", cfg2.Sources.Fetch.Timeout, cfg.Sources.Fetch.Timeout)
	}
	if !slices.Equal(cfg2.Output.Include, []string{"classes"}) {
		t.Errorf("Include after dump/load = %q", cfg2.Output.Include)
	}
}
