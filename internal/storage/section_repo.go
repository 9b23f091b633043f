package storage

import (
	"context"
	"database/sql"
	"fmt"

	"guidance-navigator/internal/corpus"
)

// SectionSummary is a catalog row without paragraph bodies.
type SectionSummary struct {
	SectionID      string `json:"section_id"`
	Title          string `json:"title"`
	Topic          string `json:"topic"`
	ParagraphCount int    `json:"paragraph_count"`
}

// SectionStore is the catalog interface consumed by the HTTP handlers.
type SectionStore interface {
	// Sync replaces the catalog with the given section set.
	Sync(ctx context.Context, sections []corpus.Section) error
	// List returns summaries of every catalogued section, in section_id order.
	List(ctx context.Context) ([]SectionSummary, error)
	// Get returns one section with its paragraphs, or sql.ErrNoRows.
	Get(ctx context.Context, sectionID string) (*corpus.Section, error)
}

// SectionRepo implements SectionStore on SQLite.
type SectionRepo struct {
	db *sql.DB
}

// NewSectionRepo creates a SectionRepo.
func NewSectionRepo(db *sql.DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// Sync replaces the catalog with the given sections in one transaction, so
// readers never observe a half-loaded corpus.
func (r *SectionRepo) Sync(ctx context.Context, sections []corpus.Section) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return fmt.Errorf("failed to clear sections: %w", err)
	}

	for i := range sections {
		section := &sections[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sections (section_id, title, topic) VALUES (?, ?, ?)`,
			section.SectionID, section.Title, section.Topic,
		)
		if err != nil {
			return fmt.Errorf("failed to insert section %s: %w", section.SectionID, err)
		}
		for pos, text := range section.Paragraphs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO paragraphs (paragraph_id, section_id, position, text) VALUES (?, ?, ?, ?)`,
				section.ParagraphIDs[pos], section.SectionID, pos, text,
			)
			if err != nil {
				return fmt.Errorf("failed to insert paragraph %s: %w", section.ParagraphIDs[pos], err)
			}
		}
	}

	return tx.Commit()
}

// List returns summaries of every catalogued section.
func (r *SectionRepo) List(ctx context.Context) ([]SectionSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.section_id, s.title, s.topic, COUNT(p.paragraph_id)
		FROM sections s
		LEFT JOIN paragraphs p ON p.section_id = s.section_id
		GROUP BY s.section_id, s.title, s.topic
		ORDER BY s.section_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var summaries []SectionSummary
	for rows.Next() {
		var s SectionSummary
		if err := rows.Scan(&s.SectionID, &s.Title, &s.Topic, &s.ParagraphCount); err != nil {
			return nil, fmt.Errorf("failed to scan section row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Get returns one section with its paragraphs in position order.
func (r *SectionRepo) Get(ctx context.Context, sectionID string) (*corpus.Section, error) {
	section := &corpus.Section{}
	err := r.db.QueryRowContext(ctx,
		`SELECT section_id, title, topic FROM sections WHERE section_id = ?`, sectionID,
	).Scan(&section.SectionID, &section.Title, &section.Topic)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT paragraph_id, text FROM paragraphs WHERE section_id = ? ORDER BY position`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load paragraphs for %s: %w", sectionID, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var paragraphID, text string
		if err := rows.Scan(&paragraphID, &text); err != nil {
			return nil, fmt.Errorf("failed to scan paragraph row: %w", err)
		}
		section.ParagraphIDs = append(section.ParagraphIDs, paragraphID)
		section.Paragraphs = append(section.Paragraphs, text)
	}
	return section, rows.Err()
}
