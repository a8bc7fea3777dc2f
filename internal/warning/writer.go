package warning

import "io"

// Writer writes a warning page view in one output format.
type Writer interface {
	// Write outputs the view and returns the number of bytes written.
	Write(view View) (int, error)
}

// baseWriter holds the output destination shared by the writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countingWriter counts the bytes passed to an io.Writer.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// title returns the page heading for the view state.
func title(state State) string {
	switch state {
	case StateBlocked:
		return "Warning: Malicious Website Blocked"
	case StateNoData:
		return "Warning: Page Blocked"
	default:
		return "Warning: Unable to Load Analysis"
	}
}
