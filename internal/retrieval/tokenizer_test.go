package retrieval

import (
	"reflect"
	"testing"
)

func TestTokenizeNormalizes(t *testing.T) {
	tokens := Tokenize("Documenting a Lawful-Basis, quickly!")
	want := []string{"documenting", "a", "lawful", "basis", "quickly"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("Tokenize() = %v, want %v", tokens, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if tokens := Tokenize(""); tokens != nil {
		t.Fatalf("expected nil for empty input, got %v", tokens)
	}
	if tokens := Tokenize("  ... !!"); tokens != nil {
		t.Fatalf("expected nil for punctuation-only input, got %v", tokens)
	}
}

func TestTokenizeSameRulesForQueryAndParagraph(t *testing.T) {
	// Term-overlap comparisons require the same normalization on both sides.
	query := Tokenize("LAWFUL basis")
	paragraph := Tokenize("lawful basis.")
	if !reflect.DeepEqual(query, paragraph) {
		t.Fatalf("query tokens %v != paragraph tokens %v", query, paragraph)
	}
}

func TestFilterStopwords(t *testing.T) {
	tokens := FilterStopwords([]string{"the", "lawful", "basis", "of", "processing"})
	want := []string{"lawful", "basis", "processing"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("FilterStopwords() = %v, want %v", tokens, want)
	}
}

func TestFilterStopwordsAllStopwords(t *testing.T) {
	if tokens := FilterStopwords([]string{"the", "and", "of"}); tokens != nil {
		t.Fatalf("expected nil when only stopwords remain, got %v", tokens)
	}
}
