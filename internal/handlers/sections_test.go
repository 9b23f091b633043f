package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"guidance-navigator/internal/corpus"
	"guidance-navigator/internal/storage"
)

// stubSectionStore backs the handler tests without a database.
type stubSectionStore struct {
	summaries []storage.SectionSummary
	sections  map[string]*corpus.Section
	listErr   error
}

func (s *stubSectionStore) Sync(context.Context, []corpus.Section) error { return nil }

func (s *stubSectionStore) List(context.Context) ([]storage.SectionSummary, error) {
	return s.summaries, s.listErr
}

func (s *stubSectionStore) Get(_ context.Context, sectionID string) (*corpus.Section, error) {
	section, ok := s.sections[sectionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return section, nil
}

func sectionsRouter(store storage.SectionStore) http.Handler {
	handler := NewSectionsHandler(store)
	r := chi.NewRouter()
	r.Get("/api/v1/sections", handler.List)
	r.Get("/api/v1/sections/{sectionID}", handler.Get)
	return r
}

func TestSectionsList(t *testing.T) {
	router := sectionsRouter(&stubSectionStore{
		summaries: []storage.SectionSummary{
			{SectionID: "lawful-basis", Title: "Documenting a Lawful Basis", Topic: "lawful basis", ParagraphCount: 2},
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var summaries []storage.SectionSummary
	if err := json.NewDecoder(w.Body).Decode(&summaries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(summaries) != 1 || summaries[0].SectionID != "lawful-basis" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestSectionsListEmpty(t *testing.T) {
	router := sectionsRouter(&stubSectionStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	// An empty catalog encodes as [], not null.
	if body := w.Body.String(); body != "[]\n" {
		t.Fatalf("body = %q, want empty array", body)
	}
}

func TestSectionsListError(t *testing.T) {
	router := sectionsRouter(&stubSectionStore{listErr: errors.New("boom")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestSectionsGet(t *testing.T) {
	router := sectionsRouter(&stubSectionStore{
		sections: map[string]*corpus.Section{
			"lawful-basis": {
				SectionID:    "lawful-basis",
				Title:        "Documenting a Lawful Basis",
				Topic:        "lawful basis",
				Paragraphs:   []string{"Document the basis."},
				ParagraphIDs: []string{"lawful-basis-p1"},
			},
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sections/lawful-basis", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var section corpus.Section
	if err := json.NewDecoder(w.Body).Decode(&section); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if section.SectionID != "lawful-basis" || len(section.Paragraphs) != 1 {
		t.Fatalf("unexpected section: %+v", section)
	}
}

func TestSectionsGetMissing(t *testing.T) {
	router := sectionsRouter(&stubSectionStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sections/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
