package host

import (
	"context"
	"strings"

	"github.com/nao1215/safelink/internal/model"
)

// Tab is a snapshot of an open tab.
type Tab struct {
	ID     int              `json:"id"`
	URL    string           `json:"url"`
	Status model.LoadStatus `json:"status"`
}

// Tabs looks up and redirects tabs.
type Tabs interface {
	// Get returns the tab, or ErrTabNotFound if it was closed.
	Get(ctx context.Context, tabID int) (Tab, error)

	// Update navigates the tab to url.
	Update(ctx context.Context, tabID int, url string) error
}

// Resources maps a bundled page name to a loadable URL.
type Resources interface {
	URL(name string) string
}

// History is the session history of one tab.
type History interface {
	// Len returns the number of entries, counting the current one.
	Len() int

	// Back moves one entry back, or returns ErrNoHistory.
	Back(ctx context.Context) error
}

// ResourceBase resolves page names against a base URL, such as the address
// of the local warning server.
type ResourceBase string

// URL implements Resources.
func (b ResourceBase) URL(name string) string {
	return strings.TrimRight(string(b), "/") + "/" + strings.TrimLeft(name, "/")
}
