package corpus

import "fmt"

// Section is a titled unit of guidance text, decomposed into ordered
// paragraphs. Sections are immutable once loaded: retrieval results hold a
// pointer to the section and never copy or modify it, so a loaded corpus is
// safe for unlimited concurrent readers.
type Section struct {
	SectionID    string   `json:"section_id"`
	Title        string   `json:"title"`
	Topic        string   `json:"topic"`
	Paragraphs   []string `json:"paragraphs"`
	ParagraphIDs []string `json:"paragraph_ids"`
}

// Validate checks the section against the corpus contract. A violation here
// means the loader (or whatever supplied the section) is broken, so callers
// should treat an error as fatal at startup rather than a per-query outcome.
func (s *Section) Validate() error {
	if s.SectionID == "" {
		return fmt.Errorf("section has empty section_id")
	}
	if s.Title == "" {
		return fmt.Errorf("section %q has empty title", s.SectionID)
	}
	if len(s.Paragraphs) != len(s.ParagraphIDs) {
		return fmt.Errorf("section %q has %d paragraphs but %d paragraph ids",
			s.SectionID, len(s.Paragraphs), len(s.ParagraphIDs))
	}
	return nil
}

// ValidateAll validates every section and rejects duplicate section IDs.
func ValidateAll(sections []Section) error {
	seen := make(map[string]struct{}, len(sections))
	for i := range sections {
		if err := sections[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[sections[i].SectionID]; dup {
			return fmt.Errorf("duplicate section_id %q", sections[i].SectionID)
		}
		seen[sections[i].SectionID] = struct{}{}
	}
	return nil
}
