package match

import "slices"

// Levenshtein computes the Levenshtein distance (edit distance) between two strings.
// The distance is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to transform one string into the other. Characters are
// compared as runes.
//
// Time complexity: O(len(s) * len(t))
// Space complexity: O(min(len(s), len(t))).
func Levenshtein(s, t string) int {
	if s == t {
		return 0
	}

	a, b := []rune(s), []rune(t)

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Ensure a is the shorter sequence for space optimization
	if len(a) > len(b) {
		a, b = b, a
	}

	// Use two rows instead of full matrix for space optimization
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// PhoneticLevenshtein computes the edit distance between two transcriptions of
// whitespace-separated phoneme symbols. Insertion and deletion cost 1; substituting
// one phoneme for another costs their PhonemeDistance, or 0 when the symbols are
// identical.
//
// The first phoneme missing from table aborts the computation with its error.
func PhoneticLevenshtein(s, t string, table FeatureLookup) (float64, error) {
	a, b := Tokenize(s), Tokenize(t)

	if slices.Equal(a, b) {
		return 0, nil
	}

	if len(a) == 0 {
		return float64(len(b)), nil
	}

	if len(b) == 0 {
		return float64(len(a)), nil
	}

	// Substitution cost is symmetric, so the shorter sequence can index the rows.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]float64, len(a)+1)
	curr := make([]float64, len(a)+1)

	for i := range prev {
		prev[i] = float64(i)
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = float64(j)

		for i := 1; i <= len(a); i++ {
			cost := 0.0
			if a[i-1] != b[j-1] {
				d, err := PhonemeDistance(a[i-1], b[j-1], table)
				if err != nil {
					return 0, err
				}

				cost = d
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)], nil
}
