package config

import (
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// setTestDBPath keeps Load from creating ./data under the package directory.
func setTestDBPath(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "navigator.db"))
}

func TestLoadDefaults(t *testing.T) {
	setTestDBPath(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.TopKDefault != 5 {
		t.Errorf("TopKDefault = %d, want 5", cfg.TopKDefault)
	}
	if cfg.CoverageWeakRatio != 0.35 || cfg.ConflictWindow != 0.70 {
		t.Errorf("coverage thresholds = %f/%f, want 0.35/0.70",
			cfg.CoverageWeakRatio, cfg.ConflictWindow)
	}
	if cfg.CorroborationRatio != 0.60 || cfg.StrongScore != 1.0 {
		t.Errorf("confidence thresholds = %f/%f, want 0.60/1.0",
			cfg.CorroborationRatio, cfg.StrongScore)
	}
	if cfg.ParaphraseEnabled {
		t.Error("paraphrase must be disabled by default")
	}
	if cfg.LLMTimeout != 10*time.Second {
		t.Errorf("LLMTimeout = %v, want 10s", cfg.LLMTimeout)
	}
	if cfg.QdrantURL != "" || cfg.QdrantVectorSize != 0 {
		t.Error("semantic signal must be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	setTestDBPath(t)
	t.Setenv("API_PORT", "8123")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOP_K_DEFAULT", "7")
	t.Setenv("COVERAGE_WEAK_RATIO", "0.5")
	t.Setenv("LLM_PARAPHRASE", "true")
	t.Setenv("LLM_MODELS", "primary, backup ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "8123" || cfg.LogLevel != slog.LevelDebug || cfg.TopKDefault != 7 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.CoverageWeakRatio != 0.5 {
		t.Errorf("CoverageWeakRatio = %f, want 0.5", cfg.CoverageWeakRatio)
	}
	if !cfg.ParaphraseEnabled {
		t.Error("LLM_PARAPHRASE=true not applied")
	}
	if !reflect.DeepEqual(cfg.LLMModels, []string{"primary", "backup"}) {
		t.Errorf("LLMModels = %v, want [primary backup]", cfg.LLMModels)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"non-numeric top k", "TOP_K_DEFAULT", "many", "TOP_K_DEFAULT"},
		{"zero top k", "TOP_K_DEFAULT", "0", "TOP_K_DEFAULT"},
		{"negative ratio", "COVERAGE_WEAK_RATIO", "-0.1", "COVERAGE_WEAK_RATIO"},
		{"zero timeout", "LLM_TIMEOUT_SECONDS", "0", "LLM_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setTestDBPath(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoadQdrantRequiresEmbeddingSettings(t *testing.T) {
	setTestDBPath(t)
	t.Setenv("QDRANT_URL", "http://localhost:6333")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "QDRANT_VECTOR_SIZE") {
		t.Fatalf("Load() error = %v, want QDRANT_VECTOR_SIZE requirement", err)
	}

	t.Setenv("QDRANT_VECTOR_SIZE", "768")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "EMBEDDING_BASE_URL") {
		t.Fatalf("Load() error = %v, want EMBEDDING_BASE_URL requirement", err)
	}

	t.Setenv("EMBEDDING_BASE_URL", "http://localhost:8080")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "EMBEDDING_MODEL_NAME") {
		t.Fatalf("Load() error = %v, want EMBEDDING_MODEL_NAME requirement", err)
	}

	t.Setenv("EMBEDDING_MODEL_NAME", "all-minilm")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.QdrantVectorSize != 768 {
		t.Errorf("QdrantVectorSize = %d, want 768", cfg.QdrantVectorSize)
	}
}
