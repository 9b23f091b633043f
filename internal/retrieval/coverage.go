package retrieval

// CoveragePolicy holds the relevance thresholds for coverage and conflict
// analysis. The numbers are policy constants without a formal derivation;
// override them through configuration when tuning, the defaults are a
// starting point, not an authority.
type CoveragePolicy struct {
	// WeakRatio: a candidate scoring below this fraction of the top score is
	// marked coverage-weak and dropped before the response is built.
	WeakRatio float64
	// ConflictWindow: a surviving candidate scoring at least this fraction of
	// the top score counts as materially strong for conflict detection.
	ConflictWindow float64
}

// DefaultCoveragePolicy returns the documented default thresholds.
func DefaultCoveragePolicy() CoveragePolicy {
	return CoveragePolicy{
		WeakRatio:      0.35,
		ConflictWindow: 0.70,
	}
}

// AnalyzeCoverage marks coverage-weak candidates and conflict-flagged
// survivors in place. It never reorders or removes anything: dropping weak
// hits is the pipeline's job, and the conflict flag is advisory.
//
// A candidate is coverage-weak when its score falls below WeakRatio of the
// top score. Two surviving candidates conflict when both are materially
// strong (within ConflictWindow of the top), address the question through at
// least one shared query term, and carry different topics. Conflicting
// sections signal that the answer may be contested across sources.
func AnalyzeCoverage(retrieved []RetrievedSection, question string, policy CoveragePolicy) {
	if len(retrieved) == 0 {
		return
	}
	top := retrieved[0].LexicalScore
	if top <= 0 {
		return
	}

	for i := range retrieved {
		if retrieved[i].LexicalScore < policy.WeakRatio*top {
			retrieved[i].CoverageWeak = true
		}
	}

	queryTerms := termSet(FilterStopwords(Tokenize(question)))
	if len(queryTerms) == 0 {
		return
	}

	// Query terms each strong survivor actually contains, for overlap checks.
	overlap := make(map[int]map[string]struct{})
	for i := range retrieved {
		if retrieved[i].CoverageWeak || retrieved[i].LexicalScore < policy.ConflictWindow*top {
			continue
		}
		sectionTerms := termSet(Tokenize(sectionText(retrieved[i].Section)))
		shared := make(map[string]struct{})
		for term := range queryTerms {
			if _, ok := sectionTerms[term]; ok {
				shared[term] = struct{}{}
			}
		}
		overlap[i] = shared
	}

	for i := range retrieved {
		for j := i + 1; j < len(retrieved); j++ {
			si, iStrong := overlap[i]
			sj, jStrong := overlap[j]
			if !iStrong || !jStrong {
				continue
			}
			if retrieved[i].Section.Topic == retrieved[j].Section.Topic {
				continue
			}
			if !setsIntersect(si, sj) {
				continue
			}
			retrieved[i].ConflictFlag = true
			retrieved[j].ConflictFlag = true
		}
	}
}

func setsIntersect(a, b map[string]struct{}) bool {
	for term := range a {
		if _, ok := b[term]; ok {
			return true
		}
	}
	return false
}
