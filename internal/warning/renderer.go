package warning

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/safelink/internal/host"
	"github.com/nao1215/safelink/internal/model"
	"github.com/nao1215/safelink/internal/storage"
)

// Slot is the blocked analysis slot as the warning page uses it.
// *storage.BlockedSlot implements it.
type Slot interface {
	Load(ctx context.Context) (*model.BlockedAnalysisRecord, error)
	Clear(ctx context.Context) error
}

// savedAter is implemented by slots that know when their record was
// written, such as *storage.BlockedSlot.
type savedAter interface {
	SavedAt(ctx context.Context) (time.Time, bool)
}

// Recorder counts rendered views. *metrics.Metrics implements it.
type Recorder interface {
	WarningViewed(state string)
}

// Renderer builds warning page views from the slot.
type Renderer struct {
	slot     Slot
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithRecorder counts every rendered view.
func WithRecorder(rec Recorder) Option {
	return func(r *Renderer) {
		r.recorder = rec
	}
}

// NewRenderer creates a renderer reading slot.
func NewRenderer(slot Slot, opts ...Option) *Renderer {
	r := &Renderer{slot: slot}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Load reads and consumes the stored verdict.
//
// An empty slot yields StateNoData and nothing is removed. A stored
// record yields StateBlocked and the slot is cleared. Any read or clear
// failure yields StateError.
func (r *Renderer) Load(ctx context.Context) View {
	view := r.load(ctx)
	if r.recorder != nil {
		r.recorder.WarningViewed(string(view.State))
	}
	return view
}

func (r *Renderer) load(ctx context.Context) View {
	record, err := r.slot.Load(ctx)
	if err != nil {
		r.logger.Error("failed to read blocked analysis", "error", err)
		// A corrupt record would fail every later load too.
		if errors.Is(err, storage.ErrCorruptRecord) {
			if err := r.slot.Clear(ctx); err != nil {
				r.logger.Error("failed to clear blocked analysis", "error", err)
			}
		}
		return errorView()
	}
	if record == nil {
		r.logger.Debug("no blocked analysis stored")
		return noDataView()
	}

	view := blockedView(record.BlockedURL, record.Analysis.ThreatReport)
	attrs := []any{"url", record.BlockedURL, "threats", len(view.Threats)}
	if sa, ok := r.slot.(savedAter); ok {
		if at, ok := sa.SavedAt(ctx); ok {
			attrs = append(attrs, "age", time.Since(at).Round(time.Second))
		}
	}

	if err := r.slot.Clear(ctx); err != nil {
		r.logger.Error("failed to clear blocked analysis", "error", err)
		return errorView()
	}

	r.logger.Info("warning page shown", attrs...)
	return view
}

// GoBackResult reports what the go-back control did.
type GoBackResult struct {
	// Navigated is true when the tab moved back one entry.
	Navigated bool `json:"navigated"`

	// Notice is shown to the user when there was nowhere to go back to.
	Notice string `json:"notice,omitempty"`
}

// GoBack moves the tab back one history entry when there is more than
// one. Otherwise it returns the no-history notice and does not navigate.
func GoBack(ctx context.Context, history host.History) (GoBackResult, error) {
	if history.Len() <= 1 {
		return GoBackResult{Notice: NoHistoryNotice}, nil
	}

	if err := history.Back(ctx); err != nil {
		if errors.Is(err, host.ErrNoHistory) {
			return GoBackResult{Notice: NoHistoryNotice}, nil
		}
		return GoBackResult{}, err
	}
	return GoBackResult{Navigated: true}, nil
}
