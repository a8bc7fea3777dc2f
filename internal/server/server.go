package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/safelink/internal/host"
	"github.com/nao1215/safelink/internal/inspect"
	"github.com/nao1215/safelink/internal/metrics"
	"github.com/nao1215/safelink/internal/warning"
)

// DefaultAddr is the default listen address.
const DefaultAddr = "127.0.0.1:8765"

// Histories gives access to tab histories. *host.Browser implements it.
type Histories interface {
	History(tabID int) (host.History, error)
}

// Server is the warning page HTTP server.
type Server struct {
	renderer  *warning.Renderer
	histories Histories
	metrics   *metrics.Metrics
	logger    *slog.Logger
	page      string
}

// Option configures a Server.
type Option func(*Server)

// WithHistories enables the go-back endpoint.
func WithHistories(h Histories) Option {
	return func(s *Server) {
		s.histories = h
	}
}

// WithMetrics serves m on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithWarningPage sets the page name the warning page is served under.
func WithWarningPage(page string) Option {
	return func(s *Server) {
		if page = strings.Trim(page, "/"); page != "" {
			s.page = page
		}
	}
}

// New creates a server rendering views with renderer.
func New(renderer *warning.Renderer, opts ...Option) *Server {
	s := &Server{
		renderer: renderer,
		page:     inspect.DefaultWarningPage,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/"+s.page, s.warningPage)
	r.Post("/tabs/{tabID}/back", s.goBack)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeText(w, http.StatusOK, "ok\n") })
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// Serve serves on l until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(l) }()

	s.logger.Info("warning server listening", "addr", l.Addr().String(), "page", "/"+s.page)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down warning server: %w", err)
		}
		return nil
	}
}

func (s *Server) warningPage(w http.ResponseWriter, r *http.Request) {
	var opts []warning.HTMLWriterOption
	if tab := r.URL.Query().Get("tab"); tab != "" && s.histories != nil {
		if id, err := strconv.Atoi(tab); err == nil && id > 0 {
			opts = append(opts, warning.WithBackAction(fmt.Sprintf("/tabs/%d/back", id)))
		}
	}

	view := s.renderer.Load(r.Context())

	var buf bytes.Buffer
	if _, err := warning.NewHTMLWriter(&buf, opts...).Write(view); err != nil {
		s.logger.Error("failed to render warning page", "error", err)
		writeText(w, http.StatusInternalServerError, "failed to render warning page\n")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) goBack(w http.ResponseWriter, r *http.Request) {
	if s.histories == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tab histories are not available"})
		return
	}

	tabID, err := strconv.Atoi(chi.URLParam(r, "tabID"))
	if err != nil || tabID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tab id"})
		return
	}

	history, err := s.histories.History(tabID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, host.ErrTabNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	result, err := warning.GoBack(r.Context(), history)
	if err != nil {
		s.logger.Error("go back failed", "tab", tabID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}
