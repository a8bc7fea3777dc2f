package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers can match them with errors.Is.
var (
	// ErrNoEndpoint is returned when no classification endpoint is configured.
	ErrNoEndpoint = errors.New("no classification endpoint specified")

	// ErrInvalidEndpoint is returned when the endpoint is not an http or https URL.
	ErrInvalidEndpoint = errors.New("invalid classification endpoint: must be an http or https URL")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrNoWarningPage is returned when the warning page name is empty.
	ErrNoWarningPage = errors.New("no warning page specified")

	// ErrUnknownStore is returned for a storage backend other than sqlite or memory.
	ErrUnknownStore = errors.New("unknown store: must be \"sqlite\" or \"memory\"")

	// ErrNoDBDir is returned when the sqlite store has no directory.
	ErrNoDBDir = errors.New("no database directory specified for the sqlite store")

	// ErrUnknownLogFormat is returned for a log format other than text or json.
	ErrUnknownLogFormat = errors.New("unknown log format: must be \"text\" or \"json\"")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown and --html is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: use only one of --json, --markdown and --html")
)
