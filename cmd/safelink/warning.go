package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/safelink/internal/config"
	"github.com/nao1215/safelink/internal/storage"
	"github.com/nao1215/safelink/internal/warning"
	"github.com/spf13/cobra"
)

// NewWarningCmd creates the warning command.
func NewWarningCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warning",
		Short: "Render the warning page for the last blocked URL",
		Long: `Warning reads the last blocked analysis from the store, renders the warning
page for it and removes it, so the verdict is shown exactly once.

When the store is empty, the page for a blocked URL without analysis data
is rendered instead.

Examples:
  # Show the last blocked URL and its threats
  safelink warning

  # Write the warning page as HTML
  safelink warning --html -o warning.html`,
		Args: cobra.NoArgs,
		RunE: runWarningCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output the view as JSON")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the page as Markdown")
	cmd.Flags().Bool("html", false,
		"Output the page as HTML")
	cmd.Flags().StringP("output", "o", "",
		"Write the page to specified file path (creates directories if needed)")

	return cmd
}

// runWarningCmd executes the warning command.
func runWarningCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr())

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	view, err := renderWarning(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // write errors are reported by Write

	if _, err := newWarningWriter(cfg, output).Write(view); err != nil {
		return fmt.Errorf("failed to write warning page: %w", err)
	}
	return nil
}

// renderWarning consumes the stored analysis and returns its view.
func renderWarning(ctx context.Context, cfg *config.Config, logger *slog.Logger) (warning.View, error) {
	store, err := openStore(cfg)
	if err != nil {
		return warning.View{}, err
	}
	defer store.Close()

	renderer := warning.NewRenderer(storage.NewBlockedSlot(store), warning.WithLogger(logger))
	return renderer.Load(ctx), nil
}

// newWarningWriter returns the warning page writer selected by cfg.
func newWarningWriter(cfg *config.Config, output io.Writer) warning.Writer {
	switch {
	case cfg.JSONReport:
		return jsonViewWriter{output: output}
	case cfg.MarkdownReport:
		return warning.NewMarkdownWriter(output)
	case cfg.HTMLReport:
		return warning.NewHTMLWriter(output)
	default:
		return warning.NewTextWriter(output)
	}
}

// jsonViewWriter writes a view as one indented JSON document.
type jsonViewWriter struct {
	output io.Writer
}

func (w jsonViewWriter) Write(view warning.View) (int, error) {
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return 0, err
	}
	return w.output.Write(append(data, '\n'))
}
