package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const lawfulBasisDoc = `# Documenting a Lawful Basis

Topic: lawful basis

Organisations must document the lawful basis for each processing activity
before processing begins.

The record should name the lawful basis and explain why it applies.
`

func TestParseFile(t *testing.T) {
	loader := NewLoader()

	section, err := loader.ParseFile("lawful_basis.md", []byte(lawfulBasisDoc))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if section.SectionID != "lawful-basis" {
		t.Errorf("SectionID = %q, want lawful-basis", section.SectionID)
	}
	if section.Title != "Documenting a Lawful Basis" {
		t.Errorf("Title = %q", section.Title)
	}
	if section.Topic != "lawful basis" {
		t.Errorf("Topic = %q, want lawful basis", section.Topic)
	}
	if len(section.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %v", len(section.Paragraphs), section.Paragraphs)
	}
	if !strings.HasPrefix(section.Paragraphs[0], "Organisations must document") {
		t.Errorf("unexpected first paragraph: %q", section.Paragraphs[0])
	}
	// Soft line breaks inside a markdown paragraph must join with a space.
	if strings.Contains(section.Paragraphs[0], "\n") {
		t.Errorf("paragraph should not contain newlines: %q", section.Paragraphs[0])
	}
	if len(section.ParagraphIDs) != len(section.Paragraphs) {
		t.Fatalf("paragraph ids length %d != paragraphs length %d",
			len(section.ParagraphIDs), len(section.Paragraphs))
	}
	if section.ParagraphIDs[0] != "lawful-basis-p1" || section.ParagraphIDs[1] != "lawful-basis-p2" {
		t.Errorf("unexpected paragraph ids: %v", section.ParagraphIDs)
	}
}

func TestParseFileWithoutHeadingOrTopic(t *testing.T) {
	loader := NewLoader()

	section, err := loader.ParseFile("retention-periods.md", []byte("Personal data must not be kept longer than necessary.\n"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if section.Title != "retention periods" {
		t.Errorf("fallback title = %q, want retention periods", section.Title)
	}
	if section.Topic != "retention periods" {
		t.Errorf("fallback topic = %q, want retention periods", section.Topic)
	}
	if len(section.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(section.Paragraphs))
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b_security.md":     "# Security of Processing\n\nTopic: security\n\nUse encryption.\n",
		"a_lawful_basis.md": lawfulBasisDoc,
		"notes.txt":         "not part of the corpus",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	loader := NewLoader()
	sections, err := loader.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	// Filename-sorted, so section order is stable across loads.
	if sections[0].SectionID != "a-lawful-basis" || sections[1].SectionID != "b-security" {
		t.Fatalf("unexpected section order: %s, %s", sections[0].SectionID, sections[1].SectionID)
	}
}

func TestLoadDirMissing(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
