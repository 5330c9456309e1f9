package match

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits a phonetic transcription into phoneme symbols.
// Any run of whitespace separates two symbols; leading and trailing
// whitespace is ignored.
func Tokenize(transcription string) []string {
	return strings.Fields(transcription)
}

// NormalizeSpelling prepares an orthographic form for comparison:
// NFC form, lower case, surrounding whitespace removed.
func NormalizeSpelling(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// Length returns the normalization length of s in the given mode:
// the number of phoneme tokens, or the number of characters.
func Length(s string, mode Mode) int {
	if mode == ModePhonetic {
		return len(Tokenize(s))
	}

	return utf8.RuneCountInString(s)
}
