package model

import (
	"bytes"
	"encoding/json"
)

// BlockedAnalysisKey is the storage key of the blocked analysis slot.
const BlockedAnalysisKey = "lastBlockedAnalysis"

// AnalysisRequest is the body sent to the classification service.
type AnalysisRequest struct {
	URL string `json:"url"`
}

// AnalysisResponse is the verdict returned by the classification service.
//
// Fields the service returns beyond is_malicious and threat_report are kept
// in Extra, so a persisted response equals the body that was received.
type AnalysisResponse struct {
	// IsMalicious is the boolean verdict.
	IsMalicious bool `json:"is_malicious"`

	// ThreatReport lists the reasons behind the verdict, in server order.
	// It may be empty or absent.
	ThreatReport []string `json:"threat_report,omitempty"`

	// Extra holds unrecognised fields verbatim, and threat_report when
	// the service sent it as null.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and retains the rest in Extra.
func (r *AnalysisResponse) UnmarshalJSON(data []byte) error {
	type plain AnalysisResponse
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, "is_malicious")
	// An explicit null stays in Extra so it is encoded again.
	if raw, ok := all["threat_report"]; !ok || string(bytes.TrimSpace(raw)) != "null" {
		delete(all, "threat_report")
	}
	if len(all) > 0 {
		p.Extra = all
	}

	*r = AnalysisResponse(p)
	return nil
}

// MarshalJSON encodes the known fields together with Extra.
func (r AnalysisResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["is_malicious"] = r.IsMalicious
	if r.ThreatReport != nil {
		out["threat_report"] = r.ThreatReport
	}
	return json.Marshal(out)
}

// BlockedAnalysisRecord is the hand-off from the inspection pipeline to the
// warning page. At most one record exists at a time; a newer write replaces
// an unconsumed older one.
type BlockedAnalysisRecord struct {
	// BlockedURL is the address the user tried to visit.
	BlockedURL string `json:"blockedUrl"`

	// Analysis is the verdict that caused the block.
	Analysis AnalysisResponse `json:"analysis"`
}

// NewBlockedAnalysisRecord builds the record for a blocked navigation.
func NewBlockedAnalysisRecord(blockedURL string, analysis AnalysisResponse) BlockedAnalysisRecord {
	return BlockedAnalysisRecord{
		BlockedURL: blockedURL,
		Analysis:   analysis,
	}
}
