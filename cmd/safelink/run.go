package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nao1215/safelink/internal/classifier"
	"github.com/nao1215/safelink/internal/config"
	"github.com/nao1215/safelink/internal/host"
	"github.com/nao1215/safelink/internal/inspect"
	"github.com/nao1215/safelink/internal/metrics"
	"github.com/nao1215/safelink/internal/model"
	"github.com/nao1215/safelink/internal/monitor"
	"github.com/nao1215/safelink/internal/report"
	"github.com/nao1215/safelink/internal/server"
	"github.com/nao1215/safelink/internal/storage"
	"github.com/nao1215/safelink/internal/warning"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Monitor navigation events and block malicious pages",
		Long: `Run reads navigation events, one JSON object per line, and inspects every
page that finished loading:

  {"tabId": 1, "url": "https://example.com/", "status": "complete"}

Pages the classification service reports as malicious are redirected to
the warning page, served on --listen. One JSON line is printed for every
finished inspection.

Examples:
  # Read events from stdin
  browser-bridge | safelink run

  # Read events from a file and exit when they are all inspected
  safelink run --events events.ndjson --once

  # Use an in-memory store and coalesce repeated loads
  safelink run --store memory --dedupe`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().String("events", "",
		"Read navigation events from this file instead of stdin")
	cmd.Flags().StringP("listen", "l", config.DefaultListen,
		"Address of the warning page server")
	cmd.Flags().String("warning-page", config.DefaultWarningPage,
		"Page name blocked tabs are redirected to")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum number of inspections in flight")
	cmd.Flags().Bool("dedupe", false,
		"Coalesce repeated loads of the same tab and URL while inspecting")
	cmd.Flags().Bool("once", false,
		"Exit once every event has been inspected instead of serving until interrupted")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr())

	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}

	eventsPath, err := cmd.Flags().GetString("events")
	if err != nil {
		return err
	}
	events := cmd.InOrStdin()
	if eventsPath != "" {
		f, err := os.Open(eventsPath) //nolint:gosec // path is given by the user
		if err != nil {
			return fmt.Errorf("failed to open events file: %w", err)
		}
		defer f.Close()
		events = f
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Listen, err)
	}

	opts := runOptions{
		events: events,
		output: cmd.OutOrStdout(),
		once:   once,
	}
	return runMonitor(ctx, cfg, logger, listener, opts)
}

// runOptions are the process-level inputs of runMonitor.
type runOptions struct {
	events io.Reader
	output io.Writer
	once   bool
}

// runMonitor wires the emulated browser, the inspection pipeline and the
// warning server together and runs them until the events are exhausted
// (with once) or ctx is cancelled. It takes ownership of listener.
func runMonitor(ctx context.Context, cfg *config.Config, logger *slog.Logger, listener net.Listener, opts runOptions) error {
	store, err := openStore(cfg)
	if err != nil {
		_ = listener.Close() //nolint:errcheck // best effort cleanup
		return err
	}
	defer store.Close()
	slot := storage.NewBlockedSlot(store)

	client, err := classifier.New(cfg.Endpoint,
		classifier.WithTimeout(cfg.Timeout),
		classifier.WithUserAgent(cfg.UserAgent),
		classifier.WithLogger(logger),
	)
	if err != nil {
		_ = listener.Close() //nolint:errcheck // best effort cleanup
		return fmt.Errorf("failed to create classification client: %w", err)
	}

	mt := metrics.New()
	browser := host.NewBrowser(
		host.WithResources(host.ResourceBase("http://" + listener.Addr().String())),
	)

	pipeline := inspect.NewStandard(inspect.Components{
		Analyzer:     client,
		Slot:         slot,
		Tabs:         browser,
		Resources:    browser,
		WarningPage:  cfg.WarningPage,
		TabParameter: true,
	}, inspect.WithLogger(logger))

	results := &resultPrinter{writer: report.NewJSONWriter(opts.output), logger: logger}
	mon := monitor.New(pipeline, browser.URL(cfg.WarningPage),
		monitor.WithLogger(logger),
		monitor.WithConcurrency(cfg.Concurrency),
		monitor.WithDedupeInFlight(cfg.DedupeInFlight),
		monitor.WithMetrics(mt),
		monitor.WithResultHandler(results.print),
	)

	renderer := warning.NewRenderer(slot,
		warning.WithLogger(logger),
		warning.WithRecorder(mt),
	)
	srv := server.New(renderer,
		server.WithHistories(browser),
		server.WithMetrics(mt),
		server.WithLogger(logger),
		server.WithWarningPage(cfg.WarningPage),
	)

	logger.Info("starting safelink",
		"endpoint", client.Endpoint(),
		"warning_page", browser.URL(cfg.WarningPage),
		"store", cfg.Store,
	)

	serveCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()

	// Without once, tabs keep navigating through the warning server after
	// the stream ends, so the browser stays open until the server stops.
	go func() {
		<-serveCtx.Done()
		browser.Close()
	}()

	// The reader may block on stdin forever, so it is not waited for.
	readErr := make(chan error, 1)
	go func() {
		readErr <- readEvents(ctx, opts.events, browser, logger)
		if opts.once {
			browser.Close()
		}
	}()

	g := new(errgroup.Group)
	g.Go(func() error {
		err := srv.Serve(serveCtx, listener)
		stopServer()
		return err
	})
	g.Go(func() error {
		err := mon.Run(ctx, browser.Events())
		if opts.once {
			stopServer()
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("safelink stopped", "tabs", len(browser.Tabs()))

	select {
	case err := <-readErr:
		return err
	default:
		return nil
	}
}

// readEvents decodes one navigation event per line and applies it to the
// browser. Malformed lines are logged and skipped.
func readEvents(ctx context.Context, r io.Reader, browser *host.Browser, logger *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line++

		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var event model.NavigationEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			logger.Warn("skipping malformed navigation event", "line", line, "error", err)
			continue
		}
		browser.Apply(event)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read navigation events: %w", err)
	}
	return nil
}

// resultPrinter serializes inspection results written from concurrent
// inspections.
type resultPrinter struct {
	mu     sync.Mutex
	writer *report.JSONWriter
	logger *slog.Logger
}

func (p *resultPrinter) print(insp *model.Inspection) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.writer.WriteInspection(insp); err != nil {
		p.logger.Error("failed to write inspection result", "url", insp.URL, "error", err)
	}
}
