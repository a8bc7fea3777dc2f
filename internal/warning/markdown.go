package warning

import (
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownWriter writes the view as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(view View) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(title(view.State))
	md.PlainText("")

	switch view.State {
	case StateBlocked:
		md.Cautionf("SafeLink blocked this page because the analysis service reported it as malicious.")
	case StateNoData:
		md.Note("There is no stored verdict to show.")
	default:
		md.Warningf("The stored verdict could not be loaded.")
	}
	md.PlainText("")

	rows := [][]string{{"Blocked URL", "`" + view.BlockedURL + "`"}}
	if view.Host != "" {
		rows = append(rows, []string{"Host", "`" + view.Host + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Threat Report")
	md.PlainText("")
	md.BulletList(view.Threats...)

	return len(md.String()), md.Build()
}
