package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RiskImpact is the canonical impact representation. Feeds that carry a single
// number decode into Overall with the category components left at zero.
type RiskImpact struct {
	Overall       float64 `json:"overall"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// Scalar is the single magnitude used wherever one number is needed.
func (r RiskImpact) Scalar() float64 { return r.Overall }

func (r *RiskImpact) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = RiskImpact{}
		return nil
	}
	if b[0] != '{' {
		var n float64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("riskScoreImpact: %w", err)
		}
		*r = RiskImpact{Overall: n}
		return nil
	}
	type breakdown RiskImpact
	var v breakdown
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("riskScoreImpact: %w", err)
	}
	*r = RiskImpact(v)
	return nil
}

// ImpactScore is the scalar impact of a critical incident. It accepts either
// feed shape and always encodes as a number.
type ImpactScore float64

func (s *ImpactScore) UnmarshalJSON(b []byte) error {
	var r RiskImpact
	if err := r.UnmarshalJSON(b); err != nil {
		return err
	}
	*s = ImpactScore(r.Scalar())
	return nil
}
