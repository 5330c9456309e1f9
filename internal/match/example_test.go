package match_test

import (
	"fmt"

	"phon-similarity/feature"
	"phon-similarity/internal/match"
)

func Example() {
	table, _ := feature.NewTable(map[string]feature.Vector{
		"p": {feature.Positive, feature.Negative, feature.Irrelevant},
		"b": {feature.Positive, feature.Negative, feature.Irrelevant},
		"a": {feature.Negative, feature.Positive, feature.Positive},
	})

	pb, _ := match.PhonemeDistance("p", "b", table)
	pa, _ := match.PhonemeDistance("p", "a", table)
	ab, _ := match.PhonemeDistance("a", "b", table)
	fmt.Println(pb, pa, ab)

	dist, _ := match.PhoneticLevenshtein("p a", "p b", table)
	sim, _ := match.NormalizeSimilarity("p a", "p b", dist, match.ModePhonetic)
	fmt.Println(dist, sim)

	lev := match.Levenshtein("kitten", "sitting")
	sim, _ = match.NormalizeSimilarity("kitten", "sitting", float64(lev), match.ModeOrthographic)
	fmt.Println(lev, sim)
	// Output:
	// 0 1 1
	// 1 0.5
	// 3 0.571
}
