package retrieval

// AnnotateMatches maps the question's terms onto matched paragraphs within
// each retained section, filling MatchedParagraphs in place. It is a pure
// function over already-retrieved data and never alters ranking.
//
// A paragraph matches when its token set shares at least one non-stopword
// question term. When nothing matches (the section ranked on title or topic
// terms alone), paragraph 0 is used so every surfaced section carries an
// anchor paragraph.
func AnnotateMatches(retrieved []RetrievedSection, question string) {
	queryTerms := termSet(FilterStopwords(Tokenize(question)))

	for i := range retrieved {
		section := retrieved[i].Section
		var matches []int
		for idx, paragraph := range section.Paragraphs {
			if overlapsQuery(queryTerms, paragraph) {
				matches = append(matches, idx)
			}
		}
		if len(matches) == 0 && len(section.Paragraphs) > 0 {
			matches = append(matches, 0)
		}
		retrieved[i].MatchedParagraphs = matches
	}
}

func overlapsQuery(queryTerms map[string]struct{}, paragraph string) bool {
	if len(queryTerms) == 0 {
		return false
	}
	for _, token := range Tokenize(paragraph) {
		if _, ok := queryTerms[token]; ok {
			return true
		}
	}
	return false
}
