package match

import (
	"fmt"
	"math"

	"phon-similarity/feature"
)

// MaxPhonemeDistance is returned when one of the phonemes is missing.
const MaxPhonemeDistance = 1.0

// phonemeDistancePrecision is the number of decimals PhonemeDistance keeps.
const phonemeDistancePrecision = 2

// FeatureLookup resolves a phoneme symbol to its feature vector.
// *feature.Table implements it.
type FeatureLookup interface {
	Lookup(symbol string) (feature.Vector, error)
}

// PhonemeDistance computes the distance between two phonemes as the share of
// relevant features on which they disagree. A feature is relevant unless it
// is Irrelevant for both phonemes.
//
// An empty symbol yields MaxPhonemeDistance without consulting the table.
// Symbols absent from the table yield a *feature.UnknownPhonemeError.
// Two phonemes with no relevant feature at all are at distance 0.
func PhonemeDistance(a, b string, table FeatureLookup) (float64, error) {
	if a == "" || b == "" {
		return MaxPhonemeDistance, nil
	}

	va, err := table.Lookup(a)
	if err != nil {
		return 0, err
	}

	vb, err := table.Lookup(b)
	if err != nil {
		return 0, err
	}

	if len(va) != len(vb) {
		return 0, fmt.Errorf("feature vectors of %q and %q differ in width: %d vs %d", a, b, len(va), len(vb))
	}

	relevant, disagreements := 0, 0

	for i := range va {
		if va[i] != feature.Irrelevant || vb[i] != feature.Irrelevant {
			relevant++
		}

		if va[i] != vb[i] {
			disagreements++
		}
	}

	if relevant == 0 {
		return 0, nil
	}

	return round(float64(disagreements)/float64(relevant), phonemeDistancePrecision), nil
}

// round rounds x to the given number of decimals, halves away from zero.
func round(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}
