package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/safelink/internal/model"
)

// SimpleWriter outputs one line per result, followed by the threat report
// of malicious URLs and the error of unavailable ones.
type SimpleWriter struct {
	baseWriter

	// verbose adds request ids and durations.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write implements Writer.
func (w *SimpleWriter) Write(results []*model.Inspection) (int, error) {
	var sb strings.Builder

	for _, insp := range results {
		w.writeResult(&sb, insp)
	}

	s := Summarize(results)
	fmt.Fprintf(&sb, "\n%d checked: %d malicious, %d clean, %d unavailable\n",
		s.Total, s.Malicious, s.Clean, s.Unavailable)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeResult(sb *strings.Builder, insp *model.Inspection) {
	fmt.Fprintf(sb, "[%s] %s", strings.ToUpper(Verdict(insp)), insp.URL)
	if w.verbose {
		fmt.Fprintf(sb, " (id=%s, %s)", insp.ID, insp.Duration().Round(time.Millisecond))
	}
	sb.WriteString("\n")

	switch Verdict(insp) {
	case VerdictMalicious:
		reasons := threats(insp)
		if len(reasons) == 0 {
			reasons = []string{"no threat report"}
		}
		for _, reason := range reasons {
			fmt.Fprintf(sb, "    - %s\n", reason)
		}
	case VerdictUnavailable:
		if insp.ErrorMessage != "" {
			fmt.Fprintf(sb, "    error: %s\n", insp.ErrorMessage)
		}
	}
}
