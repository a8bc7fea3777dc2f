package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/safelink/internal/classifier"
	"github.com/nao1215/safelink/internal/config"
	"github.com/nao1215/safelink/internal/inspect"
	"github.com/nao1215/safelink/internal/model"
	"github.com/nao1215/safelink/internal/report"
	"github.com/spf13/cobra"
)

// errMaliciousFound is returned by check --exit-code when a URL is malicious.
var errMaliciousFound = errors.New("malicious URL found")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [url...]",
		Short: "Classify URLs once and print the verdicts",
		Long: `Check sends every URL to the classification service and prints one verdict
per URL: malicious, clean, or unavailable when the service could not answer.

Check never stores the result and never shows the warning page.

Examples:
  # Check a single URL
  safelink check https://example.com/

  # Check several URLs and write a Markdown report
  safelink check --markdown -o report.md https://a.example/ https://b.example/

  # Fail with exit status 1 if any URL is malicious
  safelink check --exit-code https://example.com/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheckCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of URLs classified at once")
	cmd.Flags().Bool("exit-code", false,
		"Exit with status 1 when any URL is malicious")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr())

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	exitCode, err := cmd.Flags().GetBool("exit-code")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runCheck(ctx, cfg, logger, args)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // write errors are reported by Write

	if _, err := newReportWriter(cfg, output).Write(results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if exitCode && report.Summarize(results).Malicious > 0 {
		return errMaliciousFound
	}
	return nil
}

// runCheck classifies urls with the classify-only pipeline.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger, urls []string) ([]*model.Inspection, error) {
	for _, u := range urls {
		if !model.IsWebURL(u) {
			return nil, fmt.Errorf("not an http or https URL: %q", u)
		}
	}

	client, err := classifier.New(cfg.Endpoint,
		classifier.WithTimeout(cfg.Timeout),
		classifier.WithUserAgent(cfg.UserAgent),
		classifier.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create classification client: %w", err)
	}

	batch := inspect.NewBatch(
		inspect.NewClassifyOnly(client, inspect.WithLogger(logger)),
		inspect.WithConcurrency(cfg.Concurrency),
		inspect.WithBatchLogger(logger),
	)
	return batch.Run(ctx, urls), nil
}

// newReportWriter returns the report writer selected by cfg.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
