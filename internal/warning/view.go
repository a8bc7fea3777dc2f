package warning

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// State is what the warning page is showing.
type State string

const (
	// StateBlocked shows a consumed verdict.
	StateBlocked State = "blocked"

	// StateNoData means the slot was empty.
	StateNoData State = "no_data"

	// StateError means the slot could not be read or cleared.
	StateError State = "error"
)

// Texts shown when the verdict cannot be displayed as is.
const (
	NoURLSpecified  = "No URL specified"
	GenericThreat   = "Matches a general malicious URL pattern."
	NoURLData       = "No specific URL data found."
	NoAnalysisData  = "No analysis data found."
	ErrorLoading    = "Error loading data."
	ErrorThreatData = "Error loading threat details."
	NoHistoryNotice = "No previous page in history to go back to."
)

// View is the content of the warning page.
type View struct {
	// State is the rendered state.
	State State `json:"state"`

	// BlockedURL is the text of the blocked-url region.
	BlockedURL string `json:"blockedUrl"`

	// Host is the ASCII form of the blocked URL's host, so that
	// look-alike international domains are visible. Empty when the
	// blocked URL has no host.
	Host string `json:"host,omitempty"`

	// Threats are the items of the threat-report-list region, in order.
	// It always has at least one item.
	Threats []string `json:"threats"`
}

func noDataView() View {
	return View{
		State:      StateNoData,
		BlockedURL: NoURLData,
		Threats:    []string{NoAnalysisData},
	}
}

func errorView() View {
	return View{
		State:      StateError,
		BlockedURL: ErrorLoading,
		Threats:    []string{ErrorThreatData},
	}
}

func blockedView(blockedURL string, threats []string) View {
	v := View{
		State:      StateBlocked,
		BlockedURL: blockedURL,
		Host:       asciiHost(blockedURL),
	}
	if v.BlockedURL == "" {
		v.BlockedURL = NoURLSpecified
	}
	if len(threats) == 0 {
		v.Threats = []string{GenericThreat}
	} else {
		v.Threats = append([]string(nil), threats...)
	}
	return v
}

// asciiHost returns the punycode host of raw, or "" if it has none.
func asciiHost(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	h, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return u.Hostname()
	}
	return h
}

// Homograph reports whether the host was written with non-ASCII
// characters and differs from its displayed ASCII form.
func (v View) Homograph() bool {
	if v.Host == "" {
		return false
	}
	u, err := url.Parse(v.BlockedURL)
	if err != nil {
		return false
	}
	return !strings.EqualFold(u.Hostname(), v.Host)
}
