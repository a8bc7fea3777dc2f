package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewCheckCmd tests the check command creation.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	if cmd.Use != "check [url...]" {
		t.Errorf("expected use 'check [url...]', got %q", cmd.Use)
	}
	if cmd.Args == nil {
		t.Error("expected Args validator")
	}
	for _, name := range []string{"json", "markdown", "output", "concurrency", "exit-code"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints verdicts", func(t *testing.T) {
		t.Parallel()

		server := newAnalysisServer(t)
		output, err := executeCmd(t, "check",
			"--config", writeConfig(t, ""),
			"--endpoint", server.URL,
			"https://evil.example/login", "https://good.example/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{
			"[MALICIOUS] https://evil.example/login",
			"    - Phishing form",
			"[CLEAN] https://good.example/",
			"2 checked: 1 malicious, 1 clean, 0 unavailable",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if got := server.requests.Load(); got != 2 {
			t.Errorf("expected 2 requests, got %d", got)
		}
	})

	t.Run("unreachable service is unavailable, not clean", func(t *testing.T) {
		t.Parallel()

		closed := httptest.NewServer(http.NotFoundHandler())
		endpoint := closed.URL
		closed.Close()

		output, err := executeCmd(t, "check",
			"--config", writeConfig(t, ""),
			"--endpoint", endpoint,
			"https://evil.example/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "[UNAVAILABLE] https://evil.example/") {
			t.Errorf("expected unavailable verdict, got:\n%s", output)
		}
		if !strings.Contains(output, "1 unavailable") {
			t.Errorf("expected unavailable count, got:\n%s", output)
		}
	})

	t.Run("json report", func(t *testing.T) {
		t.Parallel()

		server := newAnalysisServer(t)
		output, err := executeCmd(t, "check",
			"--config", writeConfig(t, ""),
			"--endpoint", server.URL,
			"--json",
			"https://evil.example/", "https://good.example/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc struct {
			Summary struct {
				Total     int `json:"total"`
				Malicious int `json:"malicious"`
			} `json:"summary"`
			Results []struct {
				URL     string `json:"url"`
				Verdict string `json:"verdict"`
			} `json:"results"`
		}
		if err := json.Unmarshal([]byte(output), &doc); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", output, err)
		}
		if doc.Summary.Total != 2 || doc.Summary.Malicious != 1 {
			t.Errorf("unexpected summary %+v", doc.Summary)
		}
		if len(doc.Results) != 2 || doc.Results[0].URL != "https://evil.example/" || doc.Results[0].Verdict != "malicious" {
			t.Errorf("unexpected results %+v", doc.Results)
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		t.Parallel()

		server := newAnalysisServer(t)
		reportPath := filepath.Join(t.TempDir(), "out", "report.md")
		output, err := executeCmd(t, "check",
			"--config", writeConfig(t, ""),
			"--endpoint", server.URL,
			"--markdown", "-o", reportPath,
			"https://evil.example/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output != "" {
			t.Errorf("expected nothing on stdout, got %q", output)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "# ") || !strings.Contains(string(content), "https://evil.example/") {
			t.Errorf("unexpected markdown report:\n%s", content)
		}
	})

	t.Run("exit code on malicious URL", func(t *testing.T) {
		t.Parallel()

		server := newAnalysisServer(t)
		_, err := executeCmd(t, "check",
			"--config", writeConfig(t, ""),
			"--endpoint", server.URL,
			"--exit-code",
			"https://evil.example/")
		if !errors.Is(err, errMaliciousFound) {
			t.Errorf("expected errMaliciousFound, got %v", err)
		}
	})

	t.Run("exit code stays zero for clean URLs", func(t *testing.T) {
		t.Parallel()

		server := newAnalysisServer(t)
		if _, err := executeCmd(t, "check",
			"--config", writeConfig(t, ""),
			"--endpoint", server.URL,
			"--exit-code",
			"https://good.example/"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects non web URLs before any request", func(t *testing.T) {
		t.Parallel()

		server := newAnalysisServer(t)
		_, err := executeCmd(t, "check",
			"--config", writeConfig(t, ""),
			"--endpoint", server.URL,
			"https://good.example/", "about:blank")
		if err == nil || !strings.Contains(err.Error(), "about:blank") {
			t.Errorf("expected error naming about:blank, got %v", err)
		}
		if got := server.requests.Load(); got != 0 {
			t.Errorf("expected no requests, got %d", got)
		}
	})

	t.Run("requires a URL", func(t *testing.T) {
		t.Parallel()

		if _, err := executeCmd(t, "check", "--config", writeConfig(t, "")); err == nil {
			t.Error("expected error without arguments")
		}
	})
}
