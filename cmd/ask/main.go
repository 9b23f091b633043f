// Command ask answers a single question against the guidance corpus and
// prints the structured response as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"guidance-navigator/internal/confidence"
	"guidance-navigator/internal/config"
	"guidance-navigator/internal/corpus"
	"guidance-navigator/internal/llm"
	"guidance-navigator/internal/navigator"
	"guidance-navigator/internal/refusal"
	"guidance-navigator/internal/retrieval"
)

func main() {
	corpusDir := flag.String("corpus-dir", "", "path to the corpus directory (overrides CORPUS_DIR)")
	topK := flag.Int("top-k", 0, "maximum number of candidate sections")
	useLLM := flag.Bool("use-llm", false, "enable the bounded LLM paraphrase of the deterministic summary")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] \"question\"\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	question := flag.Arg(0)

	// One-shot tool: keep slog quiet unless something goes wrong.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *corpusDir != "" {
		cfg.CorpusDir = *corpusDir
	}

	loader := corpus.NewLoader()
	sections, err := loader.LoadDir(cfg.CorpusDir)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	var summariser navigator.Summariser
	if *useLLM {
		summariser = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModels, cfg.LLMTimeout)
	}

	engine := navigator.NewEngine(
		retrieval.NewRetriever(sections),
		refusal.NewGate(),
		summariser,
		nil, nil, "",
		retrieval.CoveragePolicy{
			WeakRatio:      cfg.CoverageWeakRatio,
			ConflictWindow: cfg.ConflictWindow,
		},
		confidence.Policy{
			CorroborationRatio: cfg.CorroborationRatio,
			StrongScore:        cfg.StrongScore,
		},
	)

	requestTopK := *topK
	if requestTopK <= 0 {
		requestTopK = cfg.TopKDefault
	}
	resp, err := engine.Ask(context.Background(), navigator.AskRequest{
		Question:   question,
		TopK:       requestTopK,
		Paraphrase: *useLLM,
	})
	if err != nil {
		log.Fatalf("Failed to answer question: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(resp); err != nil {
		log.Fatalf("Failed to encode response: %v", err)
	}
}
