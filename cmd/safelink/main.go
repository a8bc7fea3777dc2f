// Package main provides the entry point for the SafeLink CLI.
//
// SafeLink watches tab navigations, asks a classification service whether
// each visited page is malicious, and redirects tabs showing a malicious
// page to a warning page.
//
// Usage:
//
//	safelink run < events.ndjson
//	safelink check <url>...
//	safelink warning
//
// See --help for all available options.
package main

// main is the entry point for SafeLink.
func main() {
	Execute()
}
