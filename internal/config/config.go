package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultEndpoint is the classification service of a local install.
	DefaultEndpoint = "http://127.0.0.1:5000/analyze"

	// DefaultTimeout bounds one classification request. The service loads a
	// model on its first request, so the bound is generous. Zero disables it.
	DefaultTimeout = 30 * time.Second

	// DefaultWarningPage is the page name blocked tabs are sent to.
	DefaultWarningPage = "warning.html"

	// DefaultListen is the address of the warning server.
	DefaultListen = "127.0.0.1:8765"

	// DefaultConcurrency is the number of inspections in flight at once.
	DefaultConcurrency = 16

	// AppName is the application name used for XDG directory paths.
	AppName = "safelink"

	// DefaultUserAgent identifies SafeLink to the classification service.
	DefaultUserAgent = "SafeLink/1.0 (+https://github.com/nao1215/safelink)"
)

// Storage backends of the blocked analysis slot.
const (
	// StoreSQLite keeps the slot in a SQLite file under DBDir, so the
	// warning command of a later process can read it.
	StoreSQLite = "sqlite"

	// StoreMemory keeps the slot in process memory.
	StoreMemory = "memory"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration options for SafeLink.
// It is populated from defaults, the configuration file and CLI flags, and
// passed through the application rather than kept as global state.
type Config struct {
	// Endpoint is the URL of the classification service.
	Endpoint string

	// Timeout bounds each classification request. Zero disables the bound.
	Timeout time.Duration

	// UserAgent is sent with every classification request.
	UserAgent string

	// WarningPage is the bundled page name blocked tabs are redirected to.
	WarningPage string

	// Store selects the slot backend: StoreSQLite or StoreMemory.
	Store string

	// DBDir is the directory of the SQLite store.
	// Defaults to the XDG data directory (~/.local/share/safelink on Linux).
	DBDir string

	// Listen is the address of the warning server.
	Listen string

	// Concurrency is the maximum number of inspections in flight.
	Concurrency int

	// DedupeInFlight coalesces repeated events for the same tab and URL
	// while their inspection is running. Off by default, so every
	// completed load triggers a request.
	DedupeInFlight bool

	// Verbose enables debug logging. When false, only warnings and errors
	// are logged.
	Verbose bool

	// LogFormat selects LogFormatText or LogFormatJSON.
	LogFormat string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport, MarkdownReport and HTMLReport select the output format
	// of the check and warning commands. At most one may be set.
	JSONReport     bool
	MarkdownReport bool
	HTMLReport     bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Endpoint:    DefaultEndpoint,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		WarningPage: DefaultWarningPage,
		Store:       StoreSQLite,
		DBDir:       XDGDataDir(),
		Listen:      DefaultListen,
		Concurrency: DefaultConcurrency,
		LogFormat:   LogFormatText,
	}
}

// XDGDataDir returns the XDG data directory for SafeLink.
// On Linux: ~/.local/share/safelink
// On macOS: ~/Library/Application Support/safelink
// On Windows: %LOCALAPPDATA%\safelink
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for SafeLink.
// On Linux: ~/.config/safelink
// On macOS: ~/Library/Application Support/safelink
// On Windows: %APPDATA%\safelink
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return ErrNoEndpoint
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidEndpoint
	}

	// Zero disables the timeout, negative values are a mistake.
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if strings.Trim(c.WarningPage, "/ ") == "" {
		return ErrNoWarningPage
	}

	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.DBDir == "" {
			return ErrNoDBDir
		}
	default:
		return ErrUnknownStore
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return ErrUnknownLogFormat
	}

	formats := 0
	for _, on := range []bool{c.JSONReport, c.MarkdownReport, c.HTMLReport} {
		if on {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}
