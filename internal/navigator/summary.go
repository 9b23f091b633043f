package navigator

import (
	"fmt"
	"strings"

	"guidance-navigator/internal/retrieval"
)

const (
	// refusalSummary is the fixed scope-limits text returned for refused
	// questions.
	refusalSummary = "This service cannot provide legal advice, compliance decisions, or action " +
		"recommendations; it is limited in scope to locating existing guidance text."
	// noMatchSummary is returned when nothing survives coverage filtering.
	noMatchSummary = "No sufficiently relevant guidance was found for this question."
)

// buildSummary concatenates the lead sentence of each surviving section's
// first matched paragraph. Deterministic: same survivors, same summary.
func buildSummary(survivors []retrieval.RetrievedSection) string {
	if len(survivors) == 0 {
		return noMatchSummary
	}

	parts := make([]string, 0, len(survivors))
	for i := range survivors {
		section := survivors[i].Section
		if len(section.Paragraphs) == 0 || len(survivors[i].MatchedParagraphs) == 0 {
			continue
		}
		paragraph := section.Paragraphs[survivors[i].MatchedParagraphs[0]]
		if sentence := leadSentence(paragraph); sentence != "" {
			parts = append(parts, sentence)
		}
	}
	if len(parts) == 0 {
		return noMatchSummary
	}
	return strings.Join(parts, " ")
}

// leadSentence returns the first sentence of a paragraph, terminator
// included.
func leadSentence(text string) string {
	text = strings.TrimSpace(text)
	for i, r := range text {
		if r == '.' || r == '?' || r == '!' {
			return text[:i+1]
		}
	}
	return text
}

// buildLimitations assembles the caveat list from coverage observations.
// Append-only during assembly; the paraphrase note, if any, is appended last
// by the engine.
func buildLimitations(survivors []retrieval.RetrievedSection, dropped int) []string {
	var limitations []string
	if dropped > 0 {
		limitations = append(limitations, fmt.Sprintf(
			"%d weakly-matched section(s) were omitted rather than presented as relevant.", dropped))
	}
	for i := range survivors {
		if survivors[i].ConflictFlag {
			limitations = append(limitations,
				"Retrieved sections disagree on related sub-topics; treat this answer as contested.")
			break
		}
	}
	if len(survivors) == 0 {
		limitations = append(limitations,
			"No corpus section matched the question closely enough to quote.")
	}
	return limitations
}
