package model

import (
	"net/url"
	"strings"
)

// LoadStatus is the load state reported by a tab update.
type LoadStatus string

const (
	// LoadStatusLoading is reported while a tab is still loading a page.
	LoadStatusLoading LoadStatus = "loading"

	// LoadStatusComplete is reported once the page has finished loading.
	LoadStatusComplete LoadStatus = "complete"
)

// NavigationEvent is a host notification that a tab changed load state.
// It is produced by the host environment and consumed exactly once.
type NavigationEvent struct {
	// TabID identifies the tab. Valid tab identifiers are positive.
	TabID int `json:"tabId"`

	// URL is the address the tab is showing.
	URL string `json:"url"`

	// Status is the load state of the tab.
	Status LoadStatus `json:"status"`
}

// Complete reports whether the event marks load completion.
func (e NavigationEvent) Complete() bool {
	return e.Status == LoadStatusComplete
}

// IsWebURL reports whether raw uses the http or https scheme.
// Internal pages (about:, chrome:, file:, data:) are not web URLs.
func IsWebURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	default:
		return false
	}
}
