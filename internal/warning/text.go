package warning

import (
	"fmt"
	"io"
	"strings"
)

// TextWriter writes the view as plain text for a terminal.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter writing to output.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *TextWriter) Write(view View) (int, error) {
	var sb strings.Builder

	heading := title(view.State)
	sb.WriteString(heading + "\n")
	sb.WriteString(strings.Repeat("=", len(heading)) + "\n\n")

	fmt.Fprintf(&sb, "Blocked URL: %s\n", view.BlockedURL)
	if view.Host != "" {
		fmt.Fprintf(&sb, "Host:        %s\n", view.Host)
	}

	sb.WriteString("\nWhy was it blocked?\n")
	for _, threat := range view.Threats {
		fmt.Fprintf(&sb, "  - %s\n", threat)
	}

	return io.WriteString(w.output, sb.String())
}
