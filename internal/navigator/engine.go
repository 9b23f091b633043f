package navigator

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_summariser.go -package=mocks guidance-navigator/internal/navigator Summariser

import (
	"context"
	"fmt"
	"strings"

	"guidance-navigator/internal/confidence"
	"guidance-navigator/internal/contextutil"
	"guidance-navigator/internal/llm"
	"guidance-navigator/internal/refusal"
	"guidance-navigator/internal/retrieval"
	"guidance-navigator/internal/vectorstore"
)

const (
	defaultTopK = 5
	maxTopK     = 20
)

// Summariser paraphrases an already-built deterministic summary. The
// interface is defined here, on the consumer side; the concrete
// implementation lives in internal/llm. Implementations must resolve every
// failure internally; Summarise has no error return on purpose.
type Summariser interface {
	Summarise(ctx context.Context, req llm.SummariseRequest) llm.SummariseResult
}

// Embedder produces question vectors for the optional semantic signal.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Engine answers questions against the guidance corpus.
type Engine interface {
	// Ask runs the retrieval-and-trust pipeline for one question.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// navigatorEngine implements Engine. The retriever index and gate rules are
// immutable, so one engine serves concurrent requests without locking; the
// only blocking collaborator is the time-bounded paraphrase call.
type navigatorEngine struct {
	retriever   *retrieval.Retriever
	gate        *refusal.Gate
	summariser  Summariser
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	coverage    retrieval.CoveragePolicy
	confidence  confidence.Policy
}

// NewEngine creates an Engine. summariser may be nil to disable the
// paraphrase step; embedder and vectorStore may be nil to disable the
// semantic debug signal.
func NewEngine(
	retriever *retrieval.Retriever,
	gate *refusal.Gate,
	summariser Summariser,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	coveragePolicy retrieval.CoveragePolicy,
	confidencePolicy confidence.Policy,
) Engine {
	return &navigatorEngine{
		retriever:   retriever,
		gate:        gate,
		summariser:  summariser,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		coverage:    coveragePolicy,
		confidence:  confidencePolicy,
	}
}

// Ask runs: refusal gate → BM25 retrieval → coverage filter → match
// annotation → confidence → assembly. The gate short-circuits before any
// retrieval work; the optional paraphrase step runs last and can only
// replace the summary text and append one limitation.
func (e *navigatorEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, &ValidationError{Field: "question", Message: "question is required"}
	}

	if reason, refused := e.gate.Evaluate(question); refused {
		logger.InfoContext(ctx, "question refused", "reason", string(reason))
		return refusalResponse(reason), nil
	}

	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	retrieved := e.retriever.Retrieve(question, topK)
	retrieval.AnalyzeCoverage(retrieved, question, e.coverage)

	// Coverage-weak hits are dropped entirely rather than presented as
	// loosely-related "relevant" sections.
	survivors := make([]retrieval.RetrievedSection, 0, len(retrieved))
	for i := range retrieved {
		if retrieved[i].CoverageWeak {
			continue
		}
		survivors = append(survivors, retrieved[i])
	}
	for i := range survivors {
		survivors[i].Rank = i + 1
	}
	dropped := len(retrieved) - len(survivors)

	retrieval.AnnotateMatches(survivors, question)

	if e.embedder != nil && e.vectorStore != nil {
		e.attachEmbeddingScores(ctx, question, survivors)
	}

	label := confidence.Determine(survivors, false, e.confidence)
	summary := buildSummary(survivors)
	limitations := buildLimitations(survivors, dropped)

	if e.summariser != nil && req.Paraphrase {
		result := e.summariser.Summarise(ctx, llm.SummariseRequest{
			Question: question,
			Passages: paraphrasePassages(survivors),
			Fallback: summary,
		})
		summary = result.Summary
		if result.Note != "" {
			limitations = append(limitations, result.Note)
		}
	}

	logger.InfoContext(ctx, "question answered",
		"retrieved", len(retrieved),
		"surviving", len(survivors),
		"dropped_weak", dropped,
		"confidence", string(label),
	)

	resp := AskResponse{
		Summary:          summary,
		RelevantSections: projectSections(survivors),
		Limitations:      limitations,
		Confidence:       label,
	}
	if req.Debug {
		resp.Debug = debugInfo(survivors)
	}
	return resp, nil
}

// refusalResponse is the fixed very-low-confidence answer for refused
// questions.
func refusalResponse(reason refusal.Reason) AskResponse {
	return AskResponse{
		Summary:          refusalSummary,
		RelevantSections: []SectionResult{},
		Limitations: []string{fmt.Sprintf(
			"Question refused (%s): cannot provide legal advice, compliance decisions, or action recommendations.",
			reason)},
		Confidence: confidence.VeryLow,
	}
}

// attachEmbeddingScores records the advisory semantic score per surviving
// section. Failures are logged and ignored: the signal is debug-only and
// must never change the response.
func (e *navigatorEngine) attachEmbeddingScores(ctx context.Context, question string, survivors []retrieval.RetrievedSection) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(survivors) == 0 {
		return
	}
	vectors, err := e.embedder.EmbedTexts(ctx, []string{question})
	if err != nil || len(vectors) == 0 {
		logger.WarnContext(ctx, "failed to embed question for semantic signal", "error", err)
		return
	}
	hits, err := e.vectorStore.Search(ctx, e.collection, vectors[0], len(survivors))
	if err != nil {
		logger.WarnContext(ctx, "semantic search failed", "error", err)
		return
	}

	scores := make(map[string]float64, len(hits))
	for _, hit := range hits {
		if sectionID, ok := hit.Meta["section_id"].(string); ok {
			scores[sectionID] = float64(hit.Score)
		}
	}
	for i := range survivors {
		survivors[i].EmbeddingScore = scores[survivors[i].Section.SectionID]
	}
}

// paraphrasePassages hands the paraphrase step each surviving section's
// first matched paragraph, nothing more.
func paraphrasePassages(survivors []retrieval.RetrievedSection) []llm.Passage {
	passages := make([]llm.Passage, 0, len(survivors))
	for i := range survivors {
		section := survivors[i].Section
		if len(section.Paragraphs) == 0 || len(survivors[i].MatchedParagraphs) == 0 {
			continue
		}
		passages = append(passages, llm.Passage{
			Title:     section.Title,
			Paragraph: section.Paragraphs[survivors[i].MatchedParagraphs[0]],
		})
	}
	return passages
}

// projectSections strips internal scores from the surviving set.
func projectSections(survivors []retrieval.RetrievedSection) []SectionResult {
	results := make([]SectionResult, 0, len(survivors))
	for i := range survivors {
		section := survivors[i].Section
		matched := make([]MatchedParagraph, 0, len(survivors[i].MatchedParagraphs))
		for _, idx := range survivors[i].MatchedParagraphs {
			matched = append(matched, MatchedParagraph{
				ParagraphID: section.ParagraphIDs[idx],
				Text:        section.Paragraphs[idx],
			})
		}
		results = append(results, SectionResult{
			SectionID:         section.SectionID,
			Title:             section.Title,
			Topic:             section.Topic,
			MatchedParagraphs: matched,
		})
	}
	return results
}

func debugInfo(survivors []retrieval.RetrievedSection) *DebugInfo {
	debug := &DebugInfo{
		RetrievedSections: make([]DebugRetrievedSection, 0, len(survivors)),
	}
	for i := range survivors {
		debug.RetrievedSections = append(debug.RetrievedSections, DebugRetrievedSection{
			SectionID:      survivors[i].Section.SectionID,
			Rank:           survivors[i].Rank,
			ScoreLexical:   survivors[i].LexicalScore,
			ScoreEmbedding: survivors[i].EmbeddingScore,
			ConflictFlag:   survivors[i].ConflictFlag,
		})
	}
	return debug
}
