package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"guidance-navigator/internal/corpus"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func testCatalogSections() []corpus.Section {
	return []corpus.Section{
		{
			SectionID:    "lawful-basis",
			Title:        "Documenting a Lawful Basis",
			Topic:        "lawful basis",
			Paragraphs:   []string{"Document the basis.", "Keep the record current."},
			ParagraphIDs: []string{"lawful-basis-p1", "lawful-basis-p2"},
		},
		{
			SectionID:    "security-measures",
			Title:        "Security of Processing",
			Topic:        "security",
			Paragraphs:   []string{"Use encryption."},
			ParagraphIDs: []string{"security-measures-p1"},
		},
	}
}

func TestSectionRepo_SyncAndList(t *testing.T) {
	repo := NewSectionRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Sync(ctx, testCatalogSections()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	summaries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].SectionID != "lawful-basis" || summaries[0].ParagraphCount != 2 {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].SectionID != "security-measures" || summaries[1].ParagraphCount != 1 {
		t.Fatalf("unexpected second summary: %+v", summaries[1])
	}
}

func TestSectionRepo_SyncReplaces(t *testing.T) {
	repo := NewSectionRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Sync(ctx, testCatalogSections()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	// A second sync with a smaller set must fully replace the catalog.
	if err := repo.Sync(ctx, testCatalogSections()[:1]); err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}

	summaries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary after replacement, got %d", len(summaries))
	}
}

func TestSectionRepo_Get(t *testing.T) {
	repo := NewSectionRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Sync(ctx, testCatalogSections()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	section, err := repo.Get(ctx, "lawful-basis")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if section.Title != "Documenting a Lawful Basis" {
		t.Errorf("Title = %q", section.Title)
	}
	if len(section.Paragraphs) != 2 || len(section.ParagraphIDs) != 2 {
		t.Fatalf("unexpected paragraphs: %v / %v", section.Paragraphs, section.ParagraphIDs)
	}
	if section.ParagraphIDs[0] != "lawful-basis-p1" {
		t.Errorf("unexpected paragraph id order: %v", section.ParagraphIDs)
	}
	if err := section.Validate(); err != nil {
		t.Fatalf("stored section must satisfy the corpus contract: %v", err)
	}
}

func TestSectionRepo_GetMissing(t *testing.T) {
	repo := NewSectionRepo(testDB(t))

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
