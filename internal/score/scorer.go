// Package score scores batches of transcription pairs against one feature
// table, in parallel and with an optional result cache.
package score

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"phon-similarity/feature"
	"phon-similarity/internal/cache"
	"phon-similarity/internal/diagnostic"
	"phon-similarity/internal/match"
)

// DefaultWorkers is the parallelism used when none is configured.
const DefaultWorkers = 4

// ErrNoTable is returned for phonetic pairs when the Scorer has no feature table.
var ErrNoTable = errors.New("no feature table loaded")

// Pair is one comparison in a batch.
type Pair struct {
	ID     string
	Source string
	Target string
	Mode   match.Mode
}

// Result is a scored pair.
type Result struct {
	Pair
	Distance   float64
	Similarity float64
	Cached     bool
}

// Scorer computes distances and similarities for pairs. It is safe for
// concurrent use.
type Scorer struct {
	table   *feature.Table
	cache   cache.Cache
	workers int
	logger  *log.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWorkers sets the number of pairs scored concurrently by ScoreAll.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithCache sets the result cache.
func WithCache(c cache.Cache) Option {
	return func(s *Scorer) {
		s.cache = c
	}
}

// WithLogger sets the logger used for cache errors in Score.
func WithLogger(l *log.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Scorer for the given table. table may be nil when only
// orthographic pairs are scored.
func New(table *feature.Table, opts ...Option) *Scorer {
	s := &Scorer{
		table:   table,
		workers: DefaultWorkers,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the distance and similarity of one pair.
// Cache failures are logged and otherwise ignored.
func (s *Scorer) Score(ctx context.Context, p Pair) (Result, error) {
	res, cacheErrs, err := s.score(ctx, p)
	for _, cerr := range cacheErrs {
		s.logger.Printf("%v for pair %s", cerr, p.ID)
	}

	return res, err
}

// score computes one pair and returns cache failures separately from the
// scoring error.
func (s *Scorer) score(ctx context.Context, p Pair) (Result, []error, error) {
	var (
		key       string
		cacheErrs []error
	)

	if s.cache != nil {
		key = s.cacheKey(p)

		e, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			cacheErrs = append(cacheErrs, fmt.Errorf("cache get: %w", err))
		} else if ok {
			return Result{Pair: p, Distance: e.Distance, Similarity: e.Similarity, Cached: true}, nil, nil
		}
	}

	var (
		dist float64
		sim  float64
		err  error
	)

	switch p.Mode {
	case match.ModePhonetic:
		if s.table == nil {
			return Result{}, cacheErrs, fmt.Errorf("pair %s: %w", p.ID, ErrNoTable)
		}

		dist, sim, err = match.PhoneticSimilarity(p.Source, p.Target, s.table)
	case match.ModeOrthographic:
		var d int
		d, sim, err = match.OrthographicSimilarity(p.Source, p.Target)
		dist = float64(d)
	default:
		err = fmt.Errorf("unsupported mode %v", p.Mode)
	}

	if err != nil {
		return Result{}, cacheErrs, fmt.Errorf("pair %s: %w", p.ID, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cache.Entry{Distance: dist, Similarity: sim}); err != nil {
			cacheErrs = append(cacheErrs, fmt.Errorf("cache set: %w", err))
		}
	}

	return Result{Pair: p, Distance: dist, Similarity: sim}, cacheErrs, nil
}

// ScoreAll scores pairs with bounded parallelism. A pair that fails is
// reported as an error diagnostic and left out of the results; the remaining
// pairs are still scored. Cache failures become warning diagnostics. Results
// keep the input order. Only cancellation of ctx aborts the batch.
func (s *Scorer) ScoreAll(ctx context.Context, pairs []Pair) ([]Result, *diagnostic.Diagnostics, error) {
	results := make([]Result, len(pairs))
	failures := make([]error, len(pairs))
	cacheErrs := make([][]error, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range pairs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i], cacheErrs[i], failures[i] = s.score(gctx, pairs[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	diags := &diagnostic.Diagnostics{}
	out := make([]Result, 0, len(pairs))

	for i := range pairs {
		for _, cerr := range cacheErrs[i] {
			diags.AddWarning(diagnostic.CodeCacheFailed, cerr.Error(), pairs[i].ID, "")
		}

		if failures[i] != nil {
			match.RecordFailure(diags, pairs[i].ID, failures[i])
			continue
		}

		out = append(out, results[i])
	}

	return out, diags, nil
}

// cacheKey identifies a pair's result under the scorer's table.
func (s *Scorer) cacheKey(p Pair) string {
	d := xxhash.New()

	var buf [8]byte
	if s.table != nil {
		binary.LittleEndian.PutUint64(buf[:], s.table.Fingerprint())
	}

	_, _ = d.Write(buf[:])
	_, _ = d.Write([]byte{byte(p.Mode)})
	_, _ = d.WriteString(p.Source)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(p.Target)

	return fmt.Sprintf("%s:%016x", p.Mode, d.Sum64())
}
