package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/safelink/internal/model"
)

// JSONWriter outputs results as JSON.
type JSONWriter struct {
	baseWriter

	// indentString enables pretty-printed output when non-empty.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// result is the JSON form of one inspection.
type result struct {
	*model.Inspection
	Verdict string `json:"verdict"`
}

// document is the JSON form of a result set.
type document struct {
	Summary Summary  `json:"summary"`
	Results []result `json:"results"`
}

// Write outputs the results with a summary as one JSON document.
func (w *JSONWriter) Write(results []*model.Inspection) (int, error) {
	doc := document{
		Summary: Summarize(results),
		Results: make([]result, len(results)),
	}
	for i, insp := range results {
		doc.Results[i] = result{Inspection: insp, Verdict: Verdict(insp)}
	}
	return w.encode(doc)
}

// WriteInspection outputs one inspection as a single line, for streaming
// results as they finish.
func (w *JSONWriter) WriteInspection(insp *model.Inspection) (int, error) {
	return w.encode(result{Inspection: insp, Verdict: Verdict(insp)})
}

func (w *JSONWriter) encode(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indentString != "" {
		data, err = json.MarshalIndent(v, "", w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
