package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks guidance-navigator/internal/vectorstore VectorStore

import "context"

// Point is one stored section vector. Meta carries the stable section_id so
// search results can be mapped back to corpus sections.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult is one similarity hit.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore is the optional secondary-signal store. The lexical pipeline
// never requires it; a nil store simply leaves embedding scores at zero.
type VectorStore interface {
	// EnsureCollection creates the collection if missing.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// CollectionExists reports whether the collection is present.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Upsert inserts or updates section points.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search returning at most k hits.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)
}
