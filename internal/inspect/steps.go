package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nao1215/safelink/internal/classifier"
	"github.com/nao1215/safelink/internal/host"
	"github.com/nao1215/safelink/internal/model"
)

// Step names as they appear in Inspection.PerformedSteps.
const (
	StepClassify = "classify"
	StepPersist  = "persist"
	StepRedirect = "redirect"
)

// DefaultWarningPage is the bundled page tabs are redirected to.
const DefaultWarningPage = "warning.html"

// Analyzer classifies a URL. *classifier.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*model.AnalysisResponse, error)
}

// Slot stores the blocked analysis record. *storage.BlockedSlot implements it.
type Slot interface {
	Save(ctx context.Context, record model.BlockedAnalysisRecord) error
}

// ClassifyStep submits the URL to the classification service.
// A clean verdict finishes the inspection as clean; a failure finishes it
// as a network or server error and the navigation proceeds.
type ClassifyStep struct {
	analyzer Analyzer
}

// NewClassifyStep creates the classify step.
func NewClassifyStep(analyzer Analyzer) *ClassifyStep {
	return &ClassifyStep{analyzer: analyzer}
}

// Name implements Step.
func (s *ClassifyStep) Name() string {
	return StepClassify
}

// Do implements Step.
func (s *ClassifyStep) Do(ctx context.Context, insp *model.Inspection) error {
	verdict, err := s.analyzer.Analyze(classifier.WithRequestID(ctx, insp.ID), insp.URL)
	if err != nil {
		insp.Finish(OutcomeOf(ctx, err), err)
		return err
	}

	insp.Response = verdict
	if !verdict.IsMalicious {
		insp.Finish(model.OutcomeClean, nil)
	}
	return nil
}

// PersistStep writes {blockedUrl, analysis} to the blocked analysis slot,
// replacing any record the warning page has not consumed yet.
type PersistStep struct {
	slot Slot
}

// NewPersistStep creates the persist step.
func NewPersistStep(slot Slot) *PersistStep {
	return &PersistStep{slot: slot}
}

// Name implements Step.
func (s *PersistStep) Name() string {
	return StepPersist
}

// Do implements Step.
func (s *PersistStep) Do(ctx context.Context, insp *model.Inspection) error {
	if insp.Response == nil {
		return ErrNoVerdict
	}

	record := model.NewBlockedAnalysisRecord(insp.URL, *insp.Response)
	if err := s.slot.Save(ctx, record); err != nil {
		perr := &PersistError{Err: err}
		insp.Finish(model.OutcomeStorageError, perr)
		return perr
	}
	return nil
}

// RedirectStep sends the tab to the warning page if it still exists.
type RedirectStep struct {
	tabs      host.Tabs
	resources host.Resources
	page      string
	tabParam  bool
	logger    *slog.Logger
}

// RedirectStepOption configures a RedirectStep.
type RedirectStepOption func(*RedirectStep)

// WithWarningPage sets the bundled page name to redirect to.
func WithWarningPage(page string) RedirectStepOption {
	return func(s *RedirectStep) {
		if page != "" {
			s.page = page
		}
	}
}

// WithTabParameter appends ?tab=ID to the warning page URL, so a page
// served over HTTP knows which tab to send back.
func WithTabParameter(enabled bool) RedirectStepOption {
	return func(s *RedirectStep) {
		s.tabParam = enabled
	}
}

// WithRedirectLogger sets the logger of the redirect step.
func WithRedirectLogger(logger *slog.Logger) RedirectStepOption {
	return func(s *RedirectStep) {
		s.logger = logger
	}
}

// NewRedirectStep creates the redirect step.
func NewRedirectStep(tabs host.Tabs, resources host.Resources, opts ...RedirectStepOption) *RedirectStep {
	s := &RedirectStep{
		tabs:      tabs,
		resources: resources,
		page:      DefaultWarningPage,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name implements Step.
func (s *RedirectStep) Name() string {
	return StepRedirect
}

// Do implements Step.
func (s *RedirectStep) Do(ctx context.Context, insp *model.Inspection) error {
	target := s.resources.URL(s.page)
	if s.tabParam {
		target += "?tab=" + strconv.Itoa(insp.TabID)
	}

	if _, err := s.tabs.Get(ctx, insp.TabID); err != nil {
		rerr := &RedirectError{TabID: insp.TabID, Err: err}
		insp.Finish(model.OutcomeRedirectAbandoned, rerr)
		return rerr
	}

	if err := s.tabs.Update(ctx, insp.TabID, target); err != nil {
		rerr := &RedirectError{TabID: insp.TabID, Err: fmt.Errorf("update to %s: %w", target, err)}
		insp.Finish(model.OutcomeRedirectAbandoned, rerr)
		return rerr
	}

	s.logger.Warn("malicious url blocked",
		"id", insp.ID,
		"tab", insp.TabID,
		"url", insp.URL,
		"warning_page", target,
	)
	insp.Finish(model.OutcomeBlocked, nil)
	return nil
}

// Components are the collaborators of the standard pipeline.
type Components struct {
	Analyzer    Analyzer
	Slot        Slot
	Tabs        host.Tabs
	Resources   host.Resources
	WarningPage string

	// TabParameter appends the tab id to the warning page URL.
	TabParameter bool
}

// NewStandard builds the classify, persist and redirect pipeline.
func NewStandard(c Components, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewClassifyStep(c.Analyzer),
		NewPersistStep(c.Slot),
		NewRedirectStep(c.Tabs, c.Resources,
			WithWarningPage(c.WarningPage),
			WithTabParameter(c.TabParameter),
			WithRedirectLogger(p.logger),
		),
	)
	return p
}

// NewClassifyOnly builds a pipeline that only classifies. It never writes
// the slot or redirects; a malicious verdict still finishes as blocked.
func NewClassifyOnly(analyzer Analyzer, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddStep(NewClassifyStep(analyzer))
	return p
}
