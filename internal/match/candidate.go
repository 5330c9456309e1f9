package match

import (
	"errors"
	"sort"

	"phon-similarity/feature"
	"phon-similarity/internal/diagnostic"
)

// Entry is a word with its phonetic transcription.
type Entry struct {
	Word          string
	Transcription string
}

// Candidate represents a lexicon entry scored against a query.
type Candidate struct {
	Entry Entry

	// Scoring components
	PhoneticDistance     float64
	PhoneticScore        float64 // normalized phonetic similarity
	OrthographicDistance int
	OrthographicScore    float64 // normalized spelling similarity

	// Combined score for ranking (higher is better)
	CombinedScore float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every lexicon entry against query and returns the
// candidates sorted by combined score (descending). Entries that cannot be
// scored, e.g. because their transcription holds an unknown phoneme, are left
// out and reported in the returned diagnostics.
func RankCandidates(query Entry, lexicon []Entry, table FeatureLookup) (CandidateList, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	candidates := make(CandidateList, 0, len(lexicon))

	queryWord := NormalizeSpelling(query.Word)

	for _, entry := range lexicon {
		phonDist, phonScore, err := PhoneticSimilarity(query.Transcription, entry.Transcription, table)
		if err != nil {
			RecordFailure(diags, entry.Word, err)
			continue
		}

		ortDist, ortScore, err := OrthographicSimilarity(queryWord, NormalizeSpelling(entry.Word))
		if err != nil {
			RecordFailure(diags, entry.Word, err)
			continue
		}

		candidates = append(candidates, Candidate{
			Entry:                entry,
			PhoneticDistance:     phonDist,
			PhoneticScore:        phonScore,
			OrthographicDistance: ortDist,
			OrthographicScore:    ortScore,
			CombinedScore:        calculateCombinedScore(phonScore, ortScore),
		})
	}

	// Sort by combined score (descending), then by word for determinism
	sort.Sort(candidates)

	return candidates, diags
}

// RecordFailure adds a diagnostic error for an item that could not be scored,
// classifying err by its kind.
func RecordFailure(d *diagnostic.Diagnostics, item string, err error) {
	var unknown *feature.UnknownPhonemeError

	switch {
	case errors.As(err, &unknown):
		d.AddError(diagnostic.CodeUnknownPhoneme, err.Error(), item, unknown.Symbol)
	case errors.Is(err, ErrDegenerateInput):
		d.AddError(diagnostic.CodeDegenerateInput, err.Error(), item, "")
	default:
		d.AddError(diagnostic.CodeScoringFailed, err.Error(), item, "")
	}
}

// calculateCombinedScore computes a combined score from phonetic and spelling similarity.
// Weights:
//   - Phonetic similarity: 60% (0.0-0.6)
//   - Orthographic similarity: 40% (0.0-0.4)
func calculateCombinedScore(phonScore, ortScore float64) float64 {
	const (
		phonWeight = 0.6
		ortWeight  = 0.4
	)

	return round(phonScore*phonWeight+ortScore*ortWeight, similarityPrecision)
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by combined score descending, then by word for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}

	return c[i].Entry.Word < c[j].Entry.Word
}

// Top returns the top n candidates. A negative n yields no candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 {
		return CandidateList{}
	}
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}
	diff := c[0].CombinedScore - c[1].CombinedScore
	return diff < threshold
}

// AboveThreshold returns candidates with combined score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// DefaultAmbiguityThreshold is the score difference that marks two top candidates as ambiguous.
const DefaultAmbiguityThreshold = 0.05
