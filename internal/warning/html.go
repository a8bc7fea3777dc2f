package warning

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/warning.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/warning.html"))

// HTMLWriter writes the warning page as HTML. The page has the regions
// blocked-url, threat-report-list and go-back.
type HTMLWriter struct {
	baseWriter

	backAction string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithBackAction makes the go-back control POST to action and show the
// returned notice, instead of using the page's own history.
func WithBackAction(action string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.backAction = action
	}
}

// NewHTMLWriter creates an HTMLWriter writing to output.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

type htmlPage struct {
	Title      string
	View       View
	BackAction string
	Notice     string
}

// Write implements Writer.
func (w *HTMLWriter) Write(view View) (int, error) {
	cw := &countingWriter{w: w.output}
	err := pageTemplate.Execute(cw, htmlPage{
		Title:      title(view.State),
		View:       view,
		BackAction: w.backAction,
		Notice:     NoHistoryNotice,
	})
	return cw.n, err
}
