// Package refusal rejects advice- and decision-seeking questions before any
// retrieval work runs. Evaluation reads only the question text: no corpus
// state, no I/O, so the gate can be unit-tested without a corpus.
package refusal

import (
	"regexp"
	"strings"
)

// Reason tags which rule matched a refused question. It feeds test
// diagnostics and the limitation text of refusal responses.
type Reason string

const (
	// ReasonNone means no rule matched.
	ReasonNone Reason = ""
	// ReasonLawfulnessRuling covers questions asking whether a specific
	// action is lawful or legal.
	ReasonLawfulnessRuling Reason = "lawfulness_ruling"
	// ReasonComplianceDecision covers requests for a compliance determination
	// rather than guidance text.
	ReasonComplianceDecision Reason = "compliance_decision"
	// ReasonActionRecommendation covers "what should we do" phrasing.
	ReasonActionRecommendation Reason = "action_recommendation"
	// ReasonPermissionRequest covers "are we allowed" / "can we legally"
	// phrasing.
	ReasonPermissionRequest Reason = "permission_request"
)

type rule struct {
	reason  Reason
	pattern *regexp.Regexp
}

// Gate is a flat, prioritized rule classifier over normalized question text.
type Gate struct {
	rules []rule
}

// NewGate compiles the fixed rule set. Rules are evaluated in order; the
// first match wins.
func NewGate() *Gate {
	return &Gate{rules: []rule{
		{ReasonLawfulnessRuling, regexp.MustCompile(`\b(is|was|would|were)\s+(it|this|that)\s+(be\s+)?(lawful|legal|unlawful|illegal)\b`)},
		{ReasonLawfulnessRuling, regexp.MustCompile(`\blawful\s+for\s+(us|me|them|our)\b`)},
		{ReasonComplianceDecision, regexp.MustCompile(`\b(are|am|is)\s+(we|i|this|that|our)\b.*\b(compliant|in\s+compliance|exempt)\b`)},
		{ReasonComplianceDecision, regexp.MustCompile(`\bdo\s+(we|i)\s+(need|have)\s+to\b`)},
		{ReasonActionRecommendation, regexp.MustCompile(`\bwhat\s+should\s+(we|i|our)\b`)},
		{ReasonActionRecommendation, regexp.MustCompile(`\bshould\s+(we|i)\b`)},
		{ReasonActionRecommendation, regexp.MustCompile(`\b(recommend|advise)\b`)},
		{ReasonPermissionRequest, regexp.MustCompile(`\b(are|am)\s+(we|i)\s+(allowed|permitted)\b`)},
		{ReasonPermissionRequest, regexp.MustCompile(`\b(can|could|may)\s+(we|i)\s+legally\b`)},
	}}
}

// Evaluate reports whether the question should be refused and which rule
// matched. Matching is case-insensitive and deterministic.
func (g *Gate) Evaluate(question string) (Reason, bool) {
	normalized := strings.ToLower(strings.TrimSpace(question))
	if normalized == "" {
		return ReasonNone, false
	}
	for _, r := range g.rules {
		if r.pattern.MatchString(normalized) {
			return r.reason, true
		}
	}
	return ReasonNone, false
}

// ShouldRefuse is Evaluate without the diagnostic reason.
func (g *Gate) ShouldRefuse(question string) bool {
	_, refused := g.Evaluate(question)
	return refused
}
