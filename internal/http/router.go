package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"guidance-navigator/internal/handlers"
	"guidance-navigator/internal/navigator"
	"guidance-navigator/internal/storage"
	"guidance-navigator/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine      navigator.Engine
	SectionRepo storage.SectionStore
	DB          *sql.DB
	// VectorStore and Collection are nil/empty when the semantic signal is
	// disabled; the health check then skips them.
	VectorStore vectorstore.VectorStore
	Collection  string
	// TopKDefault applies when an ask request omits top_k.
	TopKDefault int
}

// NewRouter creates the HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine, deps.TopKDefault)
	sectionsHandler := handlers.NewSectionsHandler(deps.SectionRepo)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.Collection)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Get("/sections", sectionsHandler.List)
		r.Get("/sections/{sectionID}", sectionsHandler.Get)
	})
	r.Method(http.MethodGet, "/health", healthHandler)

	return r
}
