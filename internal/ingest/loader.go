// Package ingest builds a feature.Table from a CSV phoneme feature sheet.
//
// The expected layout is a header row followed by rows of
// alphabetA,alphabetB,feature_1,...,feature_N where every feature cell is
// one of "+", "0" or "-".
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"phon-similarity/feature"
)

const (
	// DefaultKeyColumn selects the second alphabet column (SAMPA in the
	// reference sheet).
	DefaultKeyColumn = 1
	// DefaultFeatureOffset is the first feature column.
	DefaultFeatureOffset = 2
)

// ParseError reports a malformed cell or row of the feature sheet.
type ParseError struct {
	Line   int
	Column int // 1-based; 0 when the whole row is at fault
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}

	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Option configures Load.
type Option func(*options)

type options struct {
	keyColumn     int
	featureOffset int
}

// WithKeyColumn selects the 0-based column used as the lookup key.
func WithKeyColumn(col int) Option {
	return func(o *options) {
		o.keyColumn = col
	}
}

// WithFeatureOffset sets the 0-based index of the first feature column.
func WithFeatureOffset(col int) Option {
	return func(o *options) {
		o.featureOffset = col
	}
}

// LoadFile loads a feature table from the CSV file at path.
func LoadFile(path string, opts ...Option) (*feature.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature table %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature table %s: %w", path, err)
	}

	return tbl, nil
}

// Load reads a feature table in CSV form. Any malformed row aborts loading
// with a *ParseError; a returned table always has uniform vector width.
func Load(r io.Reader, opts ...Option) (*feature.Table, error) {
	o := options{
		keyColumn:     DefaultKeyColumn,
		featureOffset: DefaultFeatureOffset,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.keyColumn < 0 || o.featureOffset < 1 || o.keyColumn >= o.featureOffset {
		return nil, fmt.Errorf("key column %d must precede feature offset %d", o.keyColumn, o.featureOffset)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Line: 1, Err: errors.New("missing header row")}
	}

	if err != nil {
		return nil, wrapCSVError(err)
	}

	width := len(header)
	if width <= o.featureOffset {
		return nil, &ParseError{
			Line: 1,
			Err:  fmt.Errorf("header has %d columns, no feature columns after column %d", width, o.featureOffset),
		}
	}

	entries := make(map[string]feature.Vector)
	lines := make(map[string]int)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, wrapCSVError(err)
		}

		line, _ := cr.FieldPos(0)

		if isBlank(record) {
			continue
		}

		if len(record) != width {
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d columns, got %d", width, len(record)),
			}
		}

		key := norm.NFC.String(strings.TrimSpace(record[o.keyColumn]))
		if key == "" {
			return nil, &ParseError{Line: line, Column: o.keyColumn + 1, Err: errors.New("empty phoneme symbol")}
		}

		if prev, ok := lines[key]; ok {
			return nil, &ParseError{
				Line:   line,
				Column: o.keyColumn + 1,
				Err:    fmt.Errorf("duplicate phoneme symbol %q, first seen on line %d", key, prev),
			}
		}

		vec := make(feature.Vector, 0, width-o.featureOffset)

		for i := o.featureOffset; i < width; i++ {
			v, err := feature.ParseValue(strings.TrimSpace(record[i]))
			if err != nil {
				return nil, &ParseError{Line: line, Column: i + 1, Err: err}
			}

			vec = append(vec, v)
		}

		entries[key] = vec
		lines[key] = line
	}

	tbl, err := feature.NewTable(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid feature table: %w", err)
	}

	return tbl, nil
}

func wrapCSVError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Column: perr.Column, Err: perr.Err}
	}

	return err
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
