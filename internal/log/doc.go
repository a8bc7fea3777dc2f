// Package log provides secure logging built on top of the standard slog
// package.
//
// SafeLink logs every URL a tab navigates to, and those URLs regularly carry
// session tokens and signed query strings. The SecureHandler masks:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - attributes whose key names a secret (password, token, session)
//   - values that look like secrets (JWTs, bearer tokens, long API keys)
//   - the password and sensitive query parameters of logged URLs
//
// Even in verbose mode, sensitive values are masked.
//
// # Usage
//
//	logger := log.New(os.Stderr, "text", true)
//	logger.Info("inspecting",
//	    "url", "https://example.com/cb?token=abc", // logged as token=***REDACTED***
//	)
//	slog.SetDefault(logger)
package log
