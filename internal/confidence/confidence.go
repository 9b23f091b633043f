// Package confidence maps the shape of a retrieval outcome to a discrete
// trust label. The mapping is total: every input shape yields exactly one
// label, and it never consults the paraphrase collaborator.
package confidence

import "guidance-navigator/internal/retrieval"

// Label describes trust in an assembled answer, ordered from least to most
// trustworthy.
type Label string

const (
	VeryLow Label = "very_low"
	Low     Label = "low"
	Medium  Label = "medium"
	High    Label = "high"
)

// Policy holds the score cutoffs between confidence tiers. Like the coverage
// thresholds these are policy constants, not derived values; configuration
// may override the documented defaults.
type Policy struct {
	// CorroborationRatio: a further hit corroborates the top hit when its
	// score is at least this fraction of the top score and it shares the top
	// hit's topic.
	CorroborationRatio float64
	// StrongScore is the minimum absolute lexical score for a lone hit to
	// rate medium rather than low.
	StrongScore float64
}

// DefaultPolicy returns the documented default cutoffs.
func DefaultPolicy() Policy {
	return Policy{
		CorroborationRatio: 0.60,
		StrongScore:        1.0,
	}
}

// Determine assigns the trust label for a filtered, annotated retrieval set.
// Precedence order:
//
//  1. refused questions are always very_low
//  2. an empty surviving set is very_low
//  3. any surviving conflict caps the label at low
//  4. otherwise the top hit's strength and topic corroboration decide:
//     corroborated strong hits rate high, a lone strong hit medium, a weak
//     but retained hit low.
func Determine(retrieved []retrieval.RetrievedSection, refused bool, policy Policy) Label {
	if refused {
		return VeryLow
	}
	if len(retrieved) == 0 {
		return VeryLow
	}
	for i := range retrieved {
		if retrieved[i].ConflictFlag {
			return Low
		}
	}

	top := retrieved[0]
	if top.LexicalScore < policy.StrongScore {
		return Low
	}
	for _, other := range retrieved[1:] {
		if other.LexicalScore >= policy.CorroborationRatio*top.LexicalScore &&
			other.Section.Topic == top.Section.Topic {
			return High
		}
	}
	return Medium
}
