package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phon-similarity/feature"
	"phon-similarity/internal/ingest"
)

// threeFeatureTable is the minimal table used throughout the tests:
// p and b share a vector, a disagrees with both on every feature.
func threeFeatureTable(t testing.TB) *feature.Table {
	t.Helper()

	tbl, err := feature.NewTable(map[string]feature.Vector{
		"p": {feature.Positive, feature.Negative, feature.Irrelevant},
		"b": {feature.Positive, feature.Negative, feature.Irrelevant},
		"a": {feature.Negative, feature.Positive, feature.Positive},
	})
	require.NoError(t, err)

	return tbl
}

func sheetTable(t testing.TB) *feature.Table {
	t.Helper()

	tbl, err := ingest.LoadFile("../ingest/testdata/phon_features.csv")
	require.NoError(t, err)

	return tbl
}

// countingLookup records how often the table is consulted.
type countingLookup struct {
	table FeatureLookup
	calls int
}

func (c *countingLookup) Lookup(symbol string) (feature.Vector, error) {
	c.calls++
	return c.table.Lookup(symbol)
}

// fixedLookup returns vectors without any width guarantee.
type fixedLookup map[string]feature.Vector

func (f fixedLookup) Lookup(symbol string) (feature.Vector, error) {
	v, ok := f[symbol]
	if !ok {
		return nil, &feature.UnknownPhonemeError{Symbol: symbol}
	}
	return v, nil
}

func TestPhonemeDistance(t *testing.T) {
	tbl := threeFeatureTable(t)

	tests := []struct {
		a, b string
		want float64
	}{
		{"p", "b", 0.0}, // identical vectors
		{"p", "a", 1.0}, // all three relevant, all three differ
		{"a", "b", 1.0},
		{"a", "a", 0.0},
		{"p:", "b", 0.0}, // length marker stripped
		{"a::", "a", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got, err := PhonemeDistance(tt.a, tt.b, tbl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhonemeDistance_Sheet(t *testing.T) {
	tbl := sheetTable(t)

	tests := []struct {
		a, b string
		want float64
	}{
		{"p", "b", 0.11}, // voice only, 9 relevant features
		{"p", "t", 0.22}, // labial and coronal
		{"k", "g", 0.08}, // voice only, 12 relevant features
		{"i", "y", 0.15}, // labial and round, 13 relevant features
		{"A", "A:", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got, err := PhonemeDistance(tt.a, tt.b, tbl)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPhonemeDistance_EmptySymbol(t *testing.T) {
	tbl := threeFeatureTable(t)

	for _, pair := range [][2]string{{"", "p"}, {"a", ""}, {"", ""}, {"", "not-in-table"}} {
		got, err := PhonemeDistance(pair[0], pair[1], tbl)
		require.NoError(t, err)
		assert.Equal(t, MaxPhonemeDistance, got)
	}
}

func TestPhonemeDistance_UnknownPhoneme(t *testing.T) {
	tbl := threeFeatureTable(t)

	_, err := PhonemeDistance("p", "x:", tbl)
	require.Error(t, err)
	assert.ErrorIs(t, err, feature.ErrUnknownPhoneme)
	assert.Contains(t, err.Error(), `"x"`)

	_, err = PhonemeDistance("q", "p", tbl)
	assert.ErrorIs(t, err, feature.ErrUnknownPhoneme)
}

func TestPhonemeDistance_NoRelevantFeatures(t *testing.T) {
	tbl, err := feature.NewTable(map[string]feature.Vector{
		"h": {feature.Irrelevant, feature.Irrelevant},
		"?": {feature.Irrelevant, feature.Irrelevant},
	})
	require.NoError(t, err)

	got, err := PhonemeDistance("h", "?", tbl)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestPhonemeDistance_WidthMismatch(t *testing.T) {
	lookup := fixedLookup{
		"x": {feature.Positive},
		"y": {feature.Positive, feature.Negative},
	}

	_, err := PhonemeDistance("x", "y", lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differ in width")
}

func TestPhonemeDistance_Rounding(t *testing.T) {
	// 1 disagreement over 8 relevant features: 0.125 rounds half away from zero
	vec := func(first feature.Value) feature.Vector {
		v := make(feature.Vector, 8)
		for i := range v {
			v[i] = feature.Positive
		}
		v[0] = first
		return v
	}

	lookup := fixedLookup{"x": vec(feature.Positive), "y": vec(feature.Negative)}

	got, err := PhonemeDistance("x", "y", lookup)
	require.NoError(t, err)
	assert.Equal(t, 0.13, got)
}

func TestPhonemeDistance_Properties(t *testing.T) {
	tbl := sheetTable(t)
	symbols := tbl.Symbols()

	for _, a := range symbols {
		self, err := PhonemeDistance(a, a, tbl)
		require.NoError(t, err)
		assert.Equal(t, 0.0, self, "identity for %q", a)

		for _, b := range symbols {
			ab, err := PhonemeDistance(a, b, tbl)
			require.NoError(t, err)

			ba, err := PhonemeDistance(b, a, tbl)
			require.NoError(t, err)

			assert.Equal(t, ab, ba, "symmetry for %q/%q", a, b)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
		}
	}
}

func BenchmarkPhonemeDistance(b *testing.B) {
	tbl := sheetTable(b)
	for i := 0; i < b.N; i++ {
		_, _ = PhonemeDistance("k", "g", tbl)
	}
}
