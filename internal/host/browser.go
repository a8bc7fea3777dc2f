package host

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nao1215/safelink/internal/model"
)

// tabState is the session history of one emulated tab.
type tabState struct {
	entries []string
	index   int
	status  model.LoadStatus
}

func (t *tabState) current() string {
	if len(t.entries) == 0 {
		return ""
	}
	return t.entries[t.index]
}

// push adds url after the current entry, dropping forward entries.
func (t *tabState) push(url string) {
	if len(t.entries) > 0 {
		t.entries = t.entries[:t.index+1]
	}
	t.entries = append(t.entries, url)
	t.index = len(t.entries) - 1
}

// Browser is an in-memory browser implementing Tabs and Resources.
// It is safe for concurrent use.
type Browser struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tabs   map[int]*tabState
	nextID int
	queue  []model.NavigationEvent
	closed bool

	resources Resources
	events    chan model.NavigationEvent
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithResources sets how bundled page names resolve. The default resolves
// against "safelink://extension".
func WithResources(r Resources) BrowserOption {
	return func(b *Browser) {
		b.resources = r
	}
}

// NewBrowser creates a browser with no tabs.
func NewBrowser(opts ...BrowserOption) *Browser {
	b := &Browser{
		tabs:      make(map[int]*tabState),
		nextID:    1,
		resources: ResourceBase("safelink://extension"),
		events:    make(chan model.NavigationEvent, 16),
	}
	b.cond = sync.NewCond(&b.mu)

	for _, opt := range opts {
		opt(b)
	}

	go b.pump()
	return b
}

// Events returns the navigation event stream. The channel is closed after
// Close once every queued event has been delivered.
func (b *Browser) Events() <-chan model.NavigationEvent {
	return b.events
}

// URL implements Resources.
func (b *Browser) URL(name string) string {
	return b.resources.URL(name)
}

// Open creates a tab, navigates it to url and returns its id.
func (b *Browser) Open(url string) (int, error) {
	if strings.TrimSpace(url) == "" {
		return 0, ErrInvalidURL
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.tabs[id] = &tabState{}
	b.navigateLocked(id, url)
	return id, nil
}

// Get implements Tabs.
func (b *Browser) Get(ctx context.Context, tabID int) (Tab, error) {
	if err := ctx.Err(); err != nil {
		return Tab{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tabs[tabID]
	if !ok {
		return Tab{}, fmt.Errorf("no tab with id %d: %w", tabID, ErrTabNotFound)
	}
	return Tab{ID: tabID, URL: t.current(), Status: t.status}, nil
}

// Update implements Tabs by navigating the tab to url.
func (b *Browser) Update(ctx context.Context, tabID int, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(url) == "" {
		return ErrInvalidURL
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.tabs[tabID]; !ok {
		return fmt.Errorf("no tab with id %d: %w", tabID, ErrTabNotFound)
	}
	b.navigateLocked(tabID, url)
	return nil
}

// CloseTab closes a tab.
func (b *Browser) CloseTab(tabID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.tabs[tabID]; !ok {
		return fmt.Errorf("no tab with id %d: %w", tabID, ErrTabNotFound)
	}
	delete(b.tabs, tabID)
	return nil
}

// Tabs returns a snapshot of all open tabs ordered by id.
func (b *Browser) Tabs() []Tab {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Tab, 0, len(b.tabs))
	for id, t := range b.tabs {
		out = append(out, Tab{ID: id, URL: t.current(), Status: t.status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Apply ingests an event reported by an external source. Unknown tabs are
// created with the given id, a URL different from the current entry is
// pushed onto the history, and the event is republished. Events without a
// valid tab id are republished but never create a tab.
func (b *Browser) Apply(event model.NavigationEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if event.TabID <= 0 {
		b.emitLocked(event)
		return
	}

	t, ok := b.tabs[event.TabID]
	if !ok {
		t = &tabState{}
		b.tabs[event.TabID] = t
		if event.TabID >= b.nextID {
			b.nextID = event.TabID + 1
		}
	}
	if event.URL != "" && event.URL != t.current() {
		t.push(event.URL)
	}
	t.status = event.Status
	b.emitLocked(event)
}

// History returns the session history of a tab.
func (b *Browser) History(tabID int) (History, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.tabs[tabID]; !ok {
		return nil, fmt.Errorf("no tab with id %d: %w", tabID, ErrTabNotFound)
	}
	return &tabHistory{browser: b, tabID: tabID}, nil
}

// Close stops accepting events. Queued events are still delivered before
// the Events channel is closed. Tabs stay usable.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.cond.Broadcast()
}

// navigateLocked pushes url and publishes loading then complete.
func (b *Browser) navigateLocked(tabID int, url string) {
	t := b.tabs[tabID]
	t.push(url)
	t.status = model.LoadStatusLoading
	b.emitLocked(model.NavigationEvent{TabID: tabID, URL: url, Status: model.LoadStatusLoading})
	t.status = model.LoadStatusComplete
	b.emitLocked(model.NavigationEvent{TabID: tabID, URL: url, Status: model.LoadStatusComplete})
}

func (b *Browser) emitLocked(event model.NavigationEvent) {
	if b.closed {
		return
	}
	b.queue = append(b.queue, event)
	b.cond.Signal()
}

// pump moves queued events to the Events channel without holding the lock,
// so a slow consumer never blocks navigation.
func (b *Browser) pump() {
	defer close(b.events)

	for {
		b.mu.Lock()
		for len(b.queue) == 0 && !b.closed {
			b.cond.Wait()
		}
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		event := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		b.events <- event
	}
}

// tabHistory is the History of one Browser tab.
type tabHistory struct {
	browser *Browser
	tabID   int
}

// Len implements History.
func (h *tabHistory) Len() int {
	h.browser.mu.Lock()
	defer h.browser.mu.Unlock()

	t, ok := h.browser.tabs[h.tabID]
	if !ok {
		return 0
	}
	return len(t.entries)
}

// Back implements History. Returning to an entry reloads it, which
// publishes loading and complete events for that URL.
func (h *tabHistory) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := h.browser
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tabs[h.tabID]
	if !ok {
		return fmt.Errorf("no tab with id %d: %w", h.tabID, ErrTabNotFound)
	}
	if t.index == 0 {
		return ErrNoHistory
	}

	t.index--
	url := t.current()
	t.status = model.LoadStatusLoading
	b.emitLocked(model.NavigationEvent{TabID: h.tabID, URL: url, Status: model.LoadStatusLoading})
	t.status = model.LoadStatusComplete
	b.emitLocked(model.NavigationEvent{TabID: h.tabID, URL: url, Status: model.LoadStatusComplete})
	return nil
}
