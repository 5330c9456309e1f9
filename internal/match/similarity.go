package match

import (
	"errors"
	"fmt"
	"strings"
)

// similarityPrecision is the number of decimals NormalizeSimilarity keeps.
const similarityPrecision = 3

// ErrDegenerateInput is returned when both inputs to NormalizeSimilarity are empty.
var ErrDegenerateInput = errors.New("degenerate input: both transcriptions are empty")

// Mode selects how sequences are measured.
type Mode int

const (
	// ModePhonetic measures whitespace-separated phoneme tokens.
	ModePhonetic Mode = iota
	// ModeOrthographic measures characters.
	ModeOrthographic
)

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModePhonetic:
		return "phonetic"
	case ModeOrthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Short forms "phon" and "ort" are accepted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phonetic", "phon":
		return ModePhonetic, nil
	case "orthographic", "ort":
		return ModeOrthographic, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want phonetic or orthographic)", s)
	}
}

// NormalizeSimilarity converts a raw edit distance into a similarity score:
// 1 - dist / max(Length(s), Length(t)), rounded to 3 decimals.
//
// The score lies in [0, 1] whenever dist does not exceed the longer length,
// which holds for distances computed by Levenshtein and PhoneticLevenshtein.
func NormalizeSimilarity(s, t string, dist float64, mode Mode) (float64, error) {
	if mode != ModePhonetic && mode != ModeOrthographic {
		return 0, fmt.Errorf("unsupported mode %v", mode)
	}

	normLength := max(Length(s, mode), Length(t, mode))
	if normLength == 0 {
		return 0, ErrDegenerateInput
	}

	return round(1-dist/float64(normLength), similarityPrecision), nil
}

// PhoneticSimilarity returns the phonetic edit distance of two transcriptions
// together with its normalized similarity.
func PhoneticSimilarity(s, t string, table FeatureLookup) (dist, sim float64, err error) {
	dist, err = PhoneticLevenshtein(s, t, table)
	if err != nil {
		return 0, 0, err
	}

	sim, err = NormalizeSimilarity(s, t, dist, ModePhonetic)
	if err != nil {
		return 0, 0, err
	}

	return dist, sim, nil
}

// OrthographicSimilarity returns the character edit distance of two strings
// together with its normalized similarity.
func OrthographicSimilarity(s, t string) (dist int, sim float64, err error) {
	dist = Levenshtein(s, t)

	sim, err = NormalizeSimilarity(s, t, float64(dist), ModeOrthographic)
	if err != nil {
		return 0, 0, err
	}

	return dist, sim, nil
}
