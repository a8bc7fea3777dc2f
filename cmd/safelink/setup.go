package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/safelink/internal/config"
	seclog "github.com/nao1215/safelink/internal/log"
	"github.com/nao1215/safelink/internal/storage"
	"github.com/spf13/cobra"
)

// buildConfig creates a Config from defaults, the configuration file and
// the command line, in that order. Only flags set on the command line
// override the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use the defaults if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// applyFlags copies the flags set on the command line into cfg. Flags the
// command does not define are skipped.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	stringFlags := map[string]*string{
		"endpoint":     &cfg.Endpoint,
		"store":        &cfg.Store,
		"db-dir":       &cfg.DBDir,
		"log-format":   &cfg.LogFormat,
		"listen":       &cfg.Listen,
		"warning-page": &cfg.WarningPage,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	boolFlags := map[string]*bool{
		"verbose":  &cfg.Verbose,
		"dedupe":   &cfg.DedupeInFlight,
		"json":     &cfg.JSONReport,
		"markdown": &cfg.MarkdownReport,
		"html":     &cfg.HTMLReport,
	}
	for name, dst := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = v
	}

	if flags.Changed("concurrency") {
		v, err := flags.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.Concurrency = v
	}

	return nil
}

// setupLogger creates the secure structured logger for cfg and installs
// it as the slog default.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := seclog.New(w, cfg.LogFormat, cfg.Verbose)
	slog.SetDefault(logger)
	return logger
}

// openStore opens the store backend selected by cfg.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil
	case config.StoreSQLite:
		store, err := storage.OpenSQLite(cfg.DBDir, storage.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		return store, nil
	default:
		return nil, config.ErrUnknownStore
	}
}

// openOutput returns the destination of a report: path when set, created
// with owner-only permissions, and stdout otherwise. The returned close
// function must be called once the report is written.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports name the URLs a user visited.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
