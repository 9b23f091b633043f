package corpus

import (
	"strings"
	"testing"
)

func TestValidateMismatchedParagraphIDs(t *testing.T) {
	s := Section{
		SectionID:    "lawful-basis",
		Title:        "Lawful Basis",
		Topic:        "lawful basis",
		Paragraphs:   []string{"one", "two"},
		ParagraphIDs: []string{"lawful-basis-p1"},
	}

	err := s.Validate()
	if err == nil {
		t.Fatal("expected error for mismatched paragraph ids")
	}
	if !strings.Contains(err.Error(), "paragraph ids") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateEmptyFields(t *testing.T) {
	if err := (&Section{Title: "t"}).Validate(); err == nil {
		t.Fatal("expected error for empty section_id")
	}
	if err := (&Section{SectionID: "s"}).Validate(); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestValidateAllRejectsDuplicates(t *testing.T) {
	sections := []Section{
		{SectionID: "a", Title: "A"},
		{SectionID: "a", Title: "A again"},
	}
	if err := ValidateAll(sections); err == nil {
		t.Fatal("expected error for duplicate section_id")
	}
}

func TestValidateAllOK(t *testing.T) {
	sections := []Section{
		{SectionID: "a", Title: "A", Paragraphs: []string{"x"}, ParagraphIDs: []string{"a-p1"}},
		{SectionID: "b", Title: "B"},
	}
	if err := ValidateAll(sections); err != nil {
		t.Fatalf("ValidateAll() error = %v", err)
	}
}
