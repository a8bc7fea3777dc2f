package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/safelink/internal/model"
	"github.com/nao1215/safelink/internal/storage"
	"github.com/nao1215/safelink/internal/warning"
)

// saveBlocked stores record in the SQLite store under dir.
func saveBlocked(t *testing.T, dir string, record model.BlockedAnalysisRecord) {
	t.Helper()

	store, err := storage.OpenSQLite(dir, storage.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if err := storage.NewBlockedSlot(store).Save(t.Context(), record); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}
}

func TestWarningCmd(t *testing.T) {
	t.Parallel()

	record := model.BlockedAnalysisRecord{
		BlockedURL: "https://evil.example/login",
		Analysis: model.AnalysisResponse{
			IsMalicious:  true,
			ThreatReport: []string{"Phishing form", "Known bad host"},
		},
	}

	t.Run("renders and consumes the stored verdict", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		saveBlocked(t, dir, record)
		cfgPath := writeConfig(t, "")

		output, err := executeCmd(t, "warning", "--config", cfgPath, "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"Warning: Malicious Website Blocked",
			"Blocked URL: https://evil.example/login",
			"  - Phishing form",
			"  - Known bad host",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}

		output, err = executeCmd(t, "warning", "--config", cfgPath, "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, warning.NoURLData) || !strings.Contains(output, warning.NoAnalysisData) {
			t.Errorf("expected the no data page on the second run, got:\n%s", output)
		}
	})

	t.Run("json view", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		saveBlocked(t, dir, record)

		output, err := executeCmd(t, "warning", "--config", writeConfig(t, ""), "--db-dir", dir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var view warning.View
		if err := json.Unmarshal([]byte(output), &view); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", output, err)
		}
		if view.State != warning.StateBlocked || view.BlockedURL != record.BlockedURL || view.Host != "evil.example" {
			t.Errorf("unexpected view %+v", view)
		}
		if len(view.Threats) != 2 {
			t.Errorf("expected 2 threats, got %v", view.Threats)
		}
	})

	t.Run("html page", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		saveBlocked(t, dir, model.BlockedAnalysisRecord{
			BlockedURL: "https://evil.example/",
			Analysis:   model.AnalysisResponse{IsMalicious: true},
		})

		output, err := executeCmd(t, "warning", "--config", writeConfig(t, ""), "--db-dir", dir, "--html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{`id="blocked-url"`, `id="threat-report-list"`, warning.GenericThreat} {
			if !strings.Contains(output, want) {
				t.Errorf("expected HTML to contain %q", want)
			}
		}
	})

	t.Run("memory store has no data", func(t *testing.T) {
		t.Parallel()

		output, err := executeCmd(t, "warning", "--config", writeConfig(t, ""), "--store", "memory", "--markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, warning.NoAnalysisData) {
			t.Errorf("expected no data page, got:\n%s", output)
		}
	})
}
