package feature

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/unicode/norm"
)

// LengthMarkers are the trailing vowel-length symbols stripped before lookup:
// SAMPA ":" and IPA "ː".
const LengthMarkers = ":ː"

// ErrUnknownPhoneme is matched by every *UnknownPhonemeError.
var ErrUnknownPhoneme = errors.New("unknown phoneme")

// UnknownPhonemeError reports a symbol missing from a Table.
type UnknownPhonemeError struct {
	Symbol string
}

func (e *UnknownPhonemeError) Error() string {
	return fmt.Sprintf("unknown phoneme %q", e.Symbol)
}

// Is makes errors.Is(err, ErrUnknownPhoneme) hold.
func (e *UnknownPhonemeError) Is(target error) bool {
	return target == ErrUnknownPhoneme
}

// Vector is an ordered list of feature values.
type Vector []Value

// Equal reports whether two vectors hold the same values in the same order.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}

	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}

	return true
}

// String renders the vector in raw cell form, e.g. "[+ - 0]".
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = val.Symbol()
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// Table maps phoneme symbols to feature vectors of a single width.
// A Table is never modified after NewTable returns, so it can be shared
// between goroutines without locking.
type Table struct {
	width       int
	entries     map[string]Vector
	fingerprint uint64
}

// NewTable builds a Table from the given entries. Keys are put into NFC form.
// It fails if vectors differ in width, hold invalid values, or two keys
// collapse to the same normalized symbol.
func NewTable(entries map[string]Vector) (*Table, error) {
	t := &Table{
		width:   -1,
		entries: make(map[string]Vector, len(entries)),
	}

	for _, symbol := range sortedKeys(entries) {
		vec := entries[symbol]
		key := norm.NFC.String(symbol)

		if key == "" {
			return nil, errors.New("empty phoneme symbol")
		}

		if _, ok := t.entries[key]; ok {
			return nil, fmt.Errorf("duplicate phoneme symbol %q", key)
		}

		if t.width == -1 {
			t.width = len(vec)
		} else if len(vec) != t.width {
			return nil, fmt.Errorf("phoneme %q has %d features, want %d", key, len(vec), t.width)
		}

		for i, v := range vec {
			if !v.IsValid() {
				return nil, fmt.Errorf("phoneme %q feature %d: %w: %d", key, i, ErrInvalidValue, v)
			}
		}

		t.entries[key] = append(Vector(nil), vec...)
	}

	if t.width == -1 {
		t.width = 0
	}

	t.fingerprint = t.computeFingerprint()

	return t, nil
}

// NormalizeSymbol strips trailing length markers and puts the symbol into NFC form.
func NormalizeSymbol(symbol string) string {
	return norm.NFC.String(strings.TrimRight(symbol, LengthMarkers))
}

// Lookup returns the feature vector for symbol after normalization.
// The returned vector must not be modified.
func (t *Table) Lookup(symbol string) (Vector, error) {
	key := NormalizeSymbol(symbol)

	vec, ok := t.entries[key]
	if !ok {
		return nil, &UnknownPhonemeError{Symbol: key}
	}

	return vec, nil
}

// Has reports whether symbol resolves to an entry.
func (t *Table) Has(symbol string) bool {
	_, ok := t.entries[NormalizeSymbol(symbol)]
	return ok
}

// Width returns the number of features per vector.
func (t *Table) Width() int { return t.width }

// Len returns the number of phonemes in the table.
func (t *Table) Len() int { return len(t.entries) }

// Symbols returns all symbols in sorted order.
func (t *Table) Symbols() []string {
	return sortedKeys(t.entries)
}

// Fingerprint identifies the table contents. Two tables with the same
// symbols and vectors have the same fingerprint.
func (t *Table) Fingerprint() uint64 { return t.fingerprint }

func (t *Table) computeFingerprint() uint64 {
	d := xxhash.New()

	for _, symbol := range sortedKeys(t.entries) {
		_, _ = d.WriteString(symbol)
		_, _ = d.Write([]byte{0})

		for _, v := range t.entries[symbol] {
			_, _ = d.Write([]byte{byte(v)})
		}

		_, _ = d.Write([]byte{0xff})
	}

	return d.Sum64()
}

func sortedKeys(m map[string]Vector) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
