package monitor

import (
	"strings"

	"github.com/nao1215/safelink/internal/inspect"
	"github.com/nao1215/safelink/internal/model"
)

// FilterReason says why an event was dropped. It is empty for accepted events.
type FilterReason string

const (
	// ReasonNone is reported for accepted events.
	ReasonNone FilterReason = ""

	// ReasonNotComplete means the tab was still loading.
	ReasonNotComplete FilterReason = "not_complete"

	// ReasonNoTarget means the event had no tab id or no URL.
	ReasonNoTarget FilterReason = "no_target"

	// ReasonNotWeb means the URL scheme was not http or https.
	ReasonNotWeb FilterReason = "not_web_url"

	// ReasonWarningPage means the tab is showing the warning page.
	ReasonWarningPage FilterReason = "warning_page"
)

// Accept reports whether event should be inspected. warningURL is the
// resolved address of the warning page; any URL under it, or any URL
// containing the warning page name, is never inspected.
func Accept(event model.NavigationEvent, warningURL string) (bool, FilterReason) {
	if !event.Complete() {
		return false, ReasonNotComplete
	}
	if event.TabID <= 0 || strings.TrimSpace(event.URL) == "" {
		return false, ReasonNoTarget
	}
	if !model.IsWebURL(event.URL) {
		return false, ReasonNotWeb
	}
	if isWarningPage(event.URL, warningURL) {
		return false, ReasonWarningPage
	}
	return true, ReasonNone
}

func isWarningPage(url, warningURL string) bool {
	if warningURL != "" && strings.HasPrefix(url, warningURL) {
		return true
	}
	return strings.Contains(url, pageName(warningURL))
}

// pageName returns the last path segment of warningURL, or the default
// warning page name when there is none.
func pageName(warningURL string) string {
	if i := strings.IndexAny(warningURL, "?#"); i >= 0 {
		warningURL = warningURL[:i]
	}
	name := warningURL[strings.LastIndex(warningURL, "/")+1:]
	if name == "" || strings.Contains(name, ":") {
		return inspect.DefaultWarningPage
	}
	return name
}
