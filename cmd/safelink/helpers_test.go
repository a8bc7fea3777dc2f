package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nao1215/safelink/internal/model"
)

// analysisServer is a classification service that reports every URL
// containing "evil" as malicious.
type analysisServer struct {
	*httptest.Server
	requests atomic.Int64
}

func newAnalysisServer(t *testing.T) *analysisServer {
	t.Helper()

	s := &analysisServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)

		var req model.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(req.URL, "evil") {
			_, _ = w.Write([]byte(`{"is_malicious": true, "threat_report": ["Phishing form", "Known bad host"]}`)) //nolint:errcheck // test server
			return
		}
		_, _ = w.Write([]byte(`{"is_malicious": false, "threat_report": []}`)) //nolint:errcheck // test server
	}))
	t.Cleanup(s.Close)

	return s
}

// writeConfig writes a configuration file into a temporary directory and
// returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".safelink")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// executeCmd runs the root command with args and returns its stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}
