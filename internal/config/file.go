package config

import "time"

// File represents the structure of the .safelink configuration file.
// Every field is optional; unset fields keep the value already in Config.
type File struct {
	// Endpoint is the URL of the classification service.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Timeout bounds one request, e.g. "30s". "0s" disables the bound.
	Timeout *time.Duration `yaml:"timeout,omitempty"`

	// UserAgent is sent with every classification request.
	UserAgent string `yaml:"userAgent,omitempty"`

	// WarningPage is the page name blocked tabs are redirected to.
	WarningPage string `yaml:"warningPage,omitempty"`

	// Store configures the blocked analysis slot.
	Store StoreFile `yaml:"store,omitempty"`

	// Listen is the address of the warning server.
	Listen string `yaml:"listen,omitempty"`

	// Concurrency is the maximum number of inspections in flight.
	Concurrency int `yaml:"concurrency,omitempty"`

	// DedupeInFlight coalesces repeated in-flight navigations.
	DedupeInFlight *bool `yaml:"dedupeInFlight,omitempty"`

	// Log configures logging.
	Log LogFile `yaml:"log,omitempty"`
}

// StoreFile is the store section of the configuration file.
type StoreFile struct {
	// Backend is "sqlite" or "memory".
	Backend string `yaml:"backend,omitempty"`

	// Dir is the directory of the SQLite database.
	Dir string `yaml:"dir,omitempty"`
}

// LogFile is the log section of the configuration file.
type LogFile struct {
	// Format is "text" or "json".
	Format string `yaml:"format,omitempty"`

	// Verbose enables debug logging.
	Verbose *bool `yaml:"verbose,omitempty"`
}

// Apply copies the fields set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.Timeout != nil {
		cfg.Timeout = *f.Timeout
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.WarningPage != "" {
		cfg.WarningPage = f.WarningPage
	}
	if f.Store.Backend != "" {
		cfg.Store = f.Store.Backend
	}
	if f.Store.Dir != "" {
		cfg.DBDir = f.Store.Dir
	}
	if f.Listen != "" {
		cfg.Listen = f.Listen
	}
	if f.Concurrency != 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.DedupeInFlight != nil {
		cfg.DedupeInFlight = *f.DedupeInFlight
	}
	if f.Log.Format != "" {
		cfg.LogFormat = f.Log.Format
	}
	if f.Log.Verbose != nil {
		cfg.Verbose = *f.Log.Verbose
	}
}
