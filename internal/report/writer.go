package report

import (
	"io"

	"github.com/nao1215/safelink/internal/model"
)

// Writer outputs a set of inspection results.
type Writer interface {
	// Write outputs the results and returns the number of bytes written.
	Write(results []*model.Inspection) (int, error)
}

// Verdict labels shown to users.
const (
	VerdictMalicious   = "malicious"
	VerdictClean       = "clean"
	VerdictUnavailable = "unavailable"
)

// Verdict summarizes an inspection for display. A failed request is
// reported as unavailable, not clean.
func Verdict(insp *model.Inspection) string {
	switch {
	case insp.Outcome.Malicious():
		return VerdictMalicious
	case insp.Outcome.Unavailable():
		return VerdictUnavailable
	case insp.Outcome == model.OutcomeClean:
		return VerdictClean
	default:
		return insp.Outcome.String()
	}
}

// Summary counts results per verdict.
type Summary struct {
	Total       int `json:"total"`
	Malicious   int `json:"malicious"`
	Clean       int `json:"clean"`
	Unavailable int `json:"unavailable"`
}

// Summarize counts results per verdict.
func Summarize(results []*model.Inspection) Summary {
	s := Summary{Total: len(results)}
	for _, insp := range results {
		switch Verdict(insp) {
		case VerdictMalicious:
			s.Malicious++
		case VerdictClean:
			s.Clean++
		case VerdictUnavailable:
			s.Unavailable++
		}
	}
	return s
}

// threats returns the threat report of insp, if it has a verdict.
func threats(insp *model.Inspection) []string {
	if insp.Response == nil {
		return nil
	}
	return insp.Response.ThreatReport
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
