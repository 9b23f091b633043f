package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Retrieval and
// confidence thresholds are policy constants with documented defaults; they
// are configurable here because the original boundaries carry no formal
// derivation.
type Config struct {
	CorpusDir string
	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	TopKDefault int

	// Coverage/conflict thresholds (see retrieval.CoveragePolicy).
	CoverageWeakRatio float64
	ConflictWindow    float64

	// Confidence tier cutoffs (see confidence.Policy).
	CorroborationRatio float64
	StrongScore        float64

	// Paraphrase collaborator. Disabled unless ParaphraseEnabled is set.
	ParaphraseEnabled bool
	LLMBaseURL        string
	LLMAPIKey         string
	LLMModels         []string
	LLMTimeout        time.Duration

	// Optional semantic signal. Disabled unless QdrantURL is set.
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int
	EmbeddingBaseURL string
	EmbeddingModel   string
}

// Load reads configuration from environment variables, applying defaults for
// optional fields and validating the rest. A .env file in the current
// directory or a parent (up to the project root) is loaded first; variables
// already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Walk up a few levels looking for a project-root .env.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		CorpusDir: getEnv("CORPUS_DIR", "./corpus"),
		DBPath:    getEnv("DB_PATH", "./data/navigator.db"),
		APIPort:   getEnv("API_PORT", "9000"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		ParaphraseEnabled: getEnvBool("LLM_PARAPHRASE", false),
		LLMBaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:         getEnv("LLM_API_KEY", ""),

		QdrantURL:        getEnv("QDRANT_URL", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "guidance-sections"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL_NAME", ""),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.LLMModels = splitModels(getEnv("LLM_MODELS", "gpt-5.1-mini"))

	if cfg.TopKDefault, err = getEnvInt("TOP_K_DEFAULT", 5); err != nil {
		return nil, err
	}
	if cfg.TopKDefault <= 0 {
		return nil, fmt.Errorf("TOP_K_DEFAULT must be greater than 0")
	}

	if cfg.CoverageWeakRatio, err = getEnvFloat("COVERAGE_WEAK_RATIO", 0.35); err != nil {
		return nil, err
	}
	if cfg.ConflictWindow, err = getEnvFloat("CONFLICT_WINDOW", 0.70); err != nil {
		return nil, err
	}
	if cfg.CorroborationRatio, err = getEnvFloat("CORROBORATION_RATIO", 0.60); err != nil {
		return nil, err
	}
	if cfg.StrongScore, err = getEnvFloat("STRONG_SCORE", 1.0); err != nil {
		return nil, err
	}

	timeoutSecs, err := getEnvInt("LLM_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	if timeoutSecs <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT_SECONDS must be greater than 0")
	}
	cfg.LLMTimeout = time.Duration(timeoutSecs) * time.Second

	if cfg.QdrantURL != "" {
		vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
		if vectorSizeStr == "" {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required when QDRANT_URL is set")
		}
		vectorSize, err := strconv.Atoi(vectorSizeStr)
		if err != nil || vectorSize <= 0 {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a positive integer")
		}
		cfg.QdrantVectorSize = vectorSize
		if cfg.EmbeddingBaseURL == "" {
			return nil, fmt.Errorf("EMBEDDING_BASE_URL is required when QDRANT_URL is set")
		}
		if cfg.EmbeddingModel == "" {
			return nil, fmt.Errorf("EMBEDDING_MODEL_NAME is required when QDRANT_URL is set")
		}
	}

	// Create the data directory for the SQLite catalog up front.
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return parsed, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
}

func splitModels(value string) []string {
	parts := strings.Split(value, ",")
	models := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	return models
}
