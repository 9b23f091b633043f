package navigator

import "guidance-navigator/internal/confidence"

// AskRequest is a navigator query.
type AskRequest struct {
	// Question is the natural-language question to answer.
	Question string `json:"question"`
	// TopK optionally bounds the candidate count. Zero means the default.
	TopK int `json:"top_k,omitempty"`
	// Paraphrase opts in to the bounded external paraphrase of the
	// deterministic summary. Off by default.
	Paraphrase bool `json:"paraphrase,omitempty"`
	// Debug asks for internal retrieval scores in the response.
	Debug bool `json:"debug,omitempty"`
}

// MatchedParagraph is one supporting paragraph of a surfaced section.
type MatchedParagraph struct {
	ParagraphID string `json:"paragraph_id"`
	Text        string `json:"text"`
}

// SectionResult is the caller-facing projection of a surviving retrieved
// section. Internal scores are deliberately absent.
type SectionResult struct {
	SectionID         string             `json:"section_id"`
	Title             string             `json:"title"`
	Topic             string             `json:"topic"`
	MatchedParagraphs []MatchedParagraph `json:"matched_paragraphs"`
}

// AskResponse is the assembled answer. It is built fresh per request and
// never mutated after return.
type AskResponse struct {
	Summary          string           `json:"summary"`
	RelevantSections []SectionResult  `json:"relevant_sections"`
	Limitations      []string         `json:"limitations"`
	Confidence       confidence.Label `json:"confidence"`
	Debug            *DebugInfo       `json:"debug,omitempty"`
}

// DebugInfo exposes internal retrieval state when debug mode is enabled.
type DebugInfo struct {
	RetrievedSections []DebugRetrievedSection `json:"retrieved_sections"`
}

// DebugRetrievedSection carries the scores the public response strips.
type DebugRetrievedSection struct {
	SectionID string `json:"section_id"`
	// Rank is the 1-based position in the surviving ordering.
	Rank int `json:"rank"`
	// ScoreLexical is the BM25 score that produced the ordering.
	ScoreLexical float64 `json:"score_lexical"`
	// ScoreEmbedding is the advisory semantic signal, zero when the vector
	// store is not configured.
	ScoreEmbedding float64 `json:"score_embedding,omitempty"`
	ConflictFlag   bool    `json:"conflict_flag,omitempty"`
}
