package retrieval

import (
	"math"
	"sort"
	"strings"

	"guidance-navigator/internal/corpus"
)

// BM25 shape parameters. Standard Okapi values; the policy thresholds that
// actually gate what reaches a response live in CoveragePolicy.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// Retriever scores corpus sections against questions with a BM25 index built
// once at construction. The index is never mutated afterwards, so one
// Retriever serves unlimited concurrent queries without locking.
type Retriever struct {
	sections []corpus.Section
	docs     []indexedDocument
	docFreq  map[string]int
	avgLen   float64
}

// indexedDocument holds the per-section term statistics. The document text is
// the section title, topic and the concatenation of its paragraphs, so a
// section can rank on title or topic terms that no paragraph repeats.
type indexedDocument struct {
	termFreq map[string]int
	length   int
}

// NewRetriever builds the index from the full corpus. Sections are copied
// into the retriever once; RetrievedSections reference them by pointer.
func NewRetriever(sections []corpus.Section) *Retriever {
	r := &Retriever{
		sections: sections,
		docs:     make([]indexedDocument, len(sections)),
		docFreq:  make(map[string]int),
	}

	var totalLen int
	for i := range sections {
		tokens := Tokenize(sectionText(&sections[i]))
		doc := indexedDocument{
			termFreq: make(map[string]int, len(tokens)),
			length:   len(tokens),
		}
		for _, token := range tokens {
			doc.termFreq[token]++
		}
		for term := range doc.termFreq {
			r.docFreq[term]++
		}
		r.docs[i] = doc
		totalLen += doc.length
	}
	if len(sections) > 0 {
		r.avgLen = float64(totalLen) / float64(len(sections))
	}
	return r
}

// SectionCount reports how many sections are indexed.
func (r *Retriever) SectionCount() int {
	return len(r.sections)
}

// Retrieve scores every section against the question and returns at most
// topK results ordered by descending lexical score, ties broken by corpus
// order. Sections with zero score are never surfaced, so an empty or
// stopword-only question yields an empty result.
func (r *Retriever) Retrieve(question string, topK int) []RetrievedSection {
	if topK <= 0 {
		return nil
	}
	terms := FilterStopwords(Tokenize(question))
	if len(terms) == 0 {
		return nil
	}

	type candidate struct {
		index int
		score float64
	}
	candidates := make([]candidate, 0, len(r.docs))
	for i := range r.docs {
		score := r.score(terms, &r.docs[i])
		if score > 0 {
			candidates = append(candidates, candidate{index: i, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	retrieved := make([]RetrievedSection, len(candidates))
	for rank, c := range candidates {
		retrieved[rank] = RetrievedSection{
			Section:      &r.sections[c.index],
			Rank:         rank + 1,
			LexicalScore: c.score,
		}
	}
	return retrieved
}

// score computes the BM25 score of one section document for the query terms.
// Duplicate query terms contribute once per occurrence, as in Okapi BM25.
func (r *Retriever) score(terms []string, doc *indexedDocument) float64 {
	if doc.length == 0 || r.avgLen == 0 {
		return 0
	}

	n := float64(len(r.docs))
	lengthNorm := 1 - bm25B + bm25B*(float64(doc.length)/r.avgLen)

	var score float64
	for _, term := range terms {
		tf := float64(doc.termFreq[term])
		if tf == 0 {
			continue
		}
		df := float64(r.docFreq[term])
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))
		score += idf * (tf * (bm25K1 + 1)) / (tf + bm25K1*lengthNorm)
	}
	return score
}

// sectionText concatenates the searchable text of a section.
func sectionText(section *corpus.Section) string {
	parts := make([]string, 0, len(section.Paragraphs)+2)
	parts = append(parts, section.Title, section.Topic)
	parts = append(parts, section.Paragraphs...)
	return strings.Join(parts, " ")
}
