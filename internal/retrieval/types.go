package retrieval

import "guidance-navigator/internal/corpus"

// RetrievedSection is a scored reference to a corpus section for one query.
// It is created per query per candidate and discarded once the response has
// been assembled; the underlying Section is shared, never copied.
type RetrievedSection struct {
	// Section points into the corpus store's section set.
	Section *corpus.Section
	// Rank is the 1-based position in the final ordering, unique per response.
	Rank int
	// LexicalScore is the non-negative BM25 score against the question.
	LexicalScore float64
	// EmbeddingScore is the optional secondary semantic signal. Zero when the
	// vector store is not configured. Advisory only: it never changes the
	// lexical ordering and is surfaced only in debug output.
	EmbeddingScore float64
	// CoverageWeak marks a match too weak to present as relevant. Sections
	// with this flag set are removed before the response is built.
	CoverageWeak bool
	// ConflictFlag marks that surviving sections disagree on the same
	// sub-topic. Advisory: it caps confidence but never removes the section.
	ConflictFlag bool
	// MatchedParagraphs holds the indices of paragraphs overlapping the
	// question's terms, in paragraph order. Empty until annotation runs.
	MatchedParagraphs []int
}
