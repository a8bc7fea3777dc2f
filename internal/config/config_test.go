package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Endpoint is the local service", func(t *testing.T) {
		t.Parallel()
		if cfg.Endpoint != "http://127.0.0.1:5000/analyze" {
			t.Errorf("expected local endpoint, got %q", cfg.Endpoint)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default WarningPage is warning.html", func(t *testing.T) {
		t.Parallel()
		if cfg.WarningPage != "warning.html" {
			t.Errorf("expected warning.html, got %q", cfg.WarningPage)
		}
	})

	t.Run("default Store is sqlite under the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.Store != StoreSQLite {
			t.Errorf("expected sqlite store, got %q", cfg.Store)
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("default Listen is loopback", func(t *testing.T) {
		t.Parallel()
		if cfg.Listen != "127.0.0.1:8765" {
			t.Errorf("expected 127.0.0.1:8765, got %q", cfg.Listen)
		}
	})

	t.Run("deduplication is off by default", func(t *testing.T) {
		t.Parallel()
		if cfg.DedupeInFlight {
			t.Error("expected DedupeInFlight to be false")
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests the validation rules.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"memory store without dir", func(c *Config) { c.Store = StoreMemory; c.DBDir = "" }, nil},
		{"zero timeout disables the bound", func(c *Config) { c.Timeout = 0 }, nil},
		{"https endpoint", func(c *Config) { c.Endpoint = "https://safelink.example/analyze" }, nil},
		{"json logs", func(c *Config) { c.LogFormat = LogFormatJSON }, nil},
		{"empty endpoint", func(c *Config) { c.Endpoint = " " }, ErrNoEndpoint},
		{"non-http endpoint", func(c *Config) { c.Endpoint = "ftp://127.0.0.1/analyze" }, ErrInvalidEndpoint},
		{"endpoint without host", func(c *Config) { c.Endpoint = "http:///analyze" }, ErrInvalidEndpoint},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, ErrInvalidTimeout},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"empty warning page", func(c *Config) { c.WarningPage = "/" }, ErrNoWarningPage},
		{"unknown store", func(c *Config) { c.Store = "redis" }, ErrUnknownStore},
		{"sqlite without dir", func(c *Config) { c.DBDir = "" }, ErrNoDBDir},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, ErrUnknownLogFormat},
		{"json and markdown", func(c *Config) { c.JSONReport = true; c.MarkdownReport = true }, ErrConflictingReportFormats},
		{"markdown and html", func(c *Config) { c.MarkdownReport = true; c.HTMLReport = true }, ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.safelink")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads and applies valid YAML config", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".safelink")

		content := `endpoint: "https://safelink.example/analyze"
timeout: 5s
warningPage: blocked.html
store:
  backend: memory
  dir: /var/lib/safelink
listen: "127.0.0.1:9999"
concurrency: 4
dedupeInFlight: true
log:
  format: json
  verbose: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.Endpoint != "https://safelink.example/analyze" {
			t.Errorf("unexpected endpoint %q", cfg.Endpoint)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("unexpected timeout %v", cfg.Timeout)
		}
		if cfg.WarningPage != "blocked.html" || cfg.Store != StoreMemory || cfg.DBDir != "/var/lib/safelink" {
			t.Errorf("unexpected page or store settings %+v", cfg)
		}
		if cfg.Listen != "127.0.0.1:9999" || cfg.Concurrency != 4 || !cfg.DedupeInFlight {
			t.Errorf("unexpected server settings %+v", cfg)
		}
		if cfg.LogFormat != LogFormatJSON || !cfg.Verbose {
			t.Errorf("unexpected log settings %+v", cfg)
		}
	})

	t.Run("zero timeout in file disables the bound", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".safelink")
		if err := os.WriteFile(configPath, []byte("timeout: 0s\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		file.Apply(cfg)
		if cfg.Timeout != 0 {
			t.Errorf("expected timeout 0, got %v", cfg.Timeout)
		}
	})

	t.Run("unset fields keep their values", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".safelink")
		if err := os.WriteFile(configPath, []byte("listen: \"0.0.0.0:8080\"\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		file.Apply(cfg)

		defaults := NewConfig()
		if cfg.Endpoint != defaults.Endpoint || cfg.Timeout != defaults.Timeout || cfg.Store != defaults.Store {
			t.Errorf("expected defaults to be kept, got %+v", cfg)
		}
		if cfg.Listen != "0.0.0.0:8080" {
			t.Errorf("unexpected listen %q", cfg.Listen)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".safelink")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for invalid duration", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".safelink")
		if err := os.WriteFile(configPath, []byte("timeout: soon\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid duration")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("listen: \"127.0.0.1:1\"\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if dir := XDGDataDir(); filepath.Base(dir) != AppName {
		t.Errorf("expected XDG data dir to end in %q, got %q", AppName, dir)
	}
	if dir := XDGConfigDir(); filepath.Base(dir) != AppName {
		t.Errorf("expected XDG config dir to end in %q, got %q", AppName, dir)
	}
}
