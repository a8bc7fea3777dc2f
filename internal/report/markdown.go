package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/safelink/internal/model"
)

// MarkdownWriter outputs results as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(results []*model.Inspection) (int, error) {
	md := markdown.NewMarkdown(w.output)
	s := Summarize(results)

	md.H1("SafeLink Check Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{"🔴 Malicious", strconv.Itoa(s.Malicious)},
			{"🟢 Clean", strconv.Itoa(s.Clean)},
			{"⚪ Unavailable", strconv.Itoa(s.Unavailable)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case s.Malicious > 0:
		md.Cautionf("%d of %d URL(s) were reported as malicious.", s.Malicious, s.Total)
	case s.Unavailable > 0:
		md.Warningf("%d URL(s) could not be analysed. They are not known to be safe.", s.Unavailable)
	default:
		md.Tip("No malicious URLs detected.")
	}
	md.PlainText("")

	w.writeResults(md, results)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeResults(md *markdown.Markdown, results []*model.Inspection) {
	if len(results) == 0 {
		return
	}

	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, len(results))
	for i, insp := range results {
		detail := strings.Join(threats(insp), "; ")
		if Verdict(insp) == VerdictUnavailable {
			detail = insp.ErrorMessage
		}
		if detail == "" {
			detail = "-"
		}
		rows[i] = []string{"`" + insp.URL + "`", Verdict(insp), insp.Outcome.String(), detail}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Verdict", "Outcome", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}
