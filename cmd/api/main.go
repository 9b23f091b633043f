package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"guidance-navigator/internal/confidence"
	"guidance-navigator/internal/config"
	"guidance-navigator/internal/corpus"
	"guidance-navigator/internal/http"
	"guidance-navigator/internal/llm"
	"guidance-navigator/internal/navigator"
	"guidance-navigator/internal/refusal"
	"guidance-navigator/internal/retrieval"
	"guidance-navigator/internal/storage"
	"guidance-navigator/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	// Load the corpus once; it is read-only for the process lifetime.
	loader := corpus.NewLoader()
	sections, err := loader.LoadDir(cfg.CorpusDir)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	if len(sections) == 0 {
		log.Fatalf("Corpus directory %s contains no sections", cfg.CorpusDir)
	}
	slog.Info("Corpus loaded", "dir", cfg.CorpusDir, "sections", len(sections))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	sectionRepo := storage.NewSectionRepo(db)
	if err := sectionRepo.Sync(ctx, sections); err != nil {
		log.Fatalf("Failed to sync section catalog: %v", err)
	}
	slog.Info("Section catalog synced", "path", cfg.DBPath)

	retriever := retrieval.NewRetriever(sections)
	slog.Info("Lexical index built", "sections", retriever.SectionCount())

	gate := refusal.NewGate()

	var summariser navigator.Summariser
	if cfg.ParaphraseEnabled {
		summariser = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModels, cfg.LLMTimeout)
		slog.Info("Paraphrase enabled", "base_url", cfg.LLMBaseURL, "models", cfg.LLMModels)
	}

	var vectorStore vectorstore.VectorStore
	var embedder *llm.EmbeddingsClient
	if cfg.QdrantURL != "" {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		vectorStore = qdrantStore
		embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
		slog.Info("Semantic signal enabled", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		// Index sections in the background; queries run on the lexical index
		// regardless, the semantic signal is advisory.
		go func() {
			if err := indexSections(context.Background(), embedder, vectorStore, cfg.QdrantCollection, sections); err != nil {
				slog.Error("Section embedding completed with errors", "error", err)
			} else {
				slog.Info("Section embedding completed", "sections", len(sections))
			}
		}()
	}

	var engineEmbedder navigator.Embedder
	if embedder != nil {
		engineEmbedder = embedder
	}
	engine := navigator.NewEngine(
		retriever,
		gate,
		summariser,
		engineEmbedder,
		vectorStore,
		cfg.QdrantCollection,
		retrieval.CoveragePolicy{
			WeakRatio:      cfg.CoverageWeakRatio,
			ConflictWindow: cfg.ConflictWindow,
		},
		confidence.Policy{
			CorroborationRatio: cfg.CorroborationRatio,
			StrongScore:        cfg.StrongScore,
		},
	)
	slog.Info("Navigator engine initialized")

	router := http.NewRouter(&http.Deps{
		Engine:      engine,
		SectionRepo: sectionRepo,
		DB:          db,
		VectorStore: vectorStore,
		Collection:  cfg.QdrantCollection,
		TopKDefault: cfg.TopKDefault,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// indexSections embeds every section document and upserts it into the
// vector collection. Point IDs are deterministic UUIDs derived from the
// section_id so re-runs overwrite rather than duplicate.
func indexSections(
	ctx context.Context,
	embedder *llm.EmbeddingsClient,
	store vectorstore.VectorStore,
	collection string,
	sections []corpus.Section,
) error {
	texts := make([]string, len(sections))
	for i := range sections {
		parts := append([]string{sections[i].Title, sections[i].Topic}, sections[i].Paragraphs...)
		texts[i] = strings.Join(parts, " ")
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}

	points := make([]vectorstore.Point, len(sections))
	for i := range sections {
		points[i] = vectorstore.Point{
			ID:  uuid.NewSHA1(uuid.NameSpaceOID, []byte(sections[i].SectionID)).String(),
			Vec: vectors[i],
			Meta: map[string]any{
				"section_id": sections[i].SectionID,
				"topic":      sections[i].Topic,
			},
		}
	}
	return store.Upsert(ctx, collection, points)
}
