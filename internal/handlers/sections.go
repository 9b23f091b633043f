package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guidance-navigator/internal/contextutil"
	"guidance-navigator/internal/storage"
)

// SectionsHandler serves the read-only corpus catalog.
type SectionsHandler struct {
	repo storage.SectionStore
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(repo storage.SectionStore) *SectionsHandler {
	return &SectionsHandler{repo: repo}
}

// List returns summaries of every loaded section.
func (h *SectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	summaries, err := h.repo.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list sections", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list sections")
		return
	}
	if summaries == nil {
		summaries = []storage.SectionSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		logger.ErrorContext(ctx, "failed to encode sections", "error", err)
	}
}

// Get returns one section with its paragraphs.
func (h *SectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	sectionID := chi.URLParam(r, "sectionID")
	section, err := h.repo.Get(ctx, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Section not found")
			return
		}
		logger.ErrorContext(ctx, "failed to get section", "section_id", sectionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get section")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(section); err != nil {
		logger.ErrorContext(ctx, "failed to encode section", "error", err)
	}
}
