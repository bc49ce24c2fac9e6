// SPDX-License-Identifier: MIT

package gf2

import (
	"errors"

	"go.uber.org/zap"
)

// Sentinel errors for the gf2 package.
var (
	// ErrMalformedMatrix indicates a column or row id that the orders do not cover.
	ErrMalformedMatrix = errors.New("gf2: malformed matrix")

	// ErrNilRanker indicates a nil column or row order.
	ErrNilRanker = errors.New("gf2: nil order")
)

const panicNilLogger = "gf2: WithLogger: logger must be non-nil"

// Ranker is a memoized strict total order over ids. Rank reports ok=false
// for ids it does not cover; ID inverts Rank.
type Ranker interface {
	Rank(id int) (pos int, ok bool)
	ID(pos int) int
}

// Stats summarizes one reduction.
type Stats struct {
	Columns   int // columns processed
	Pivots    int // nonzero columns after reduction
	Additions int // column additions performed
}

// Result is the outcome of Reduce.
type Result struct {
	// Reduced is the reduced matrix, keyed like the input.
	Reduced Matrix

	// Pivots maps the low row of every nonzero reduced column to that column.
	Pivots map[int]int

	// Reduction is V with Reduced = Input · V. Nil unless WithReductionMatrix was given.
	Reduction Matrix

	Stats Stats
}

// Lows returns the column -> low row map, the inverse of Pivots.
func (r *Result) Lows() map[int]int {
	out := make(map[int]int, len(r.Pivots))
	for row, col := range r.Pivots {
		out[col] = row
	}

	return out
}

// Options configures Reduce.
type Options struct {
	Rows      Ranker      // row order; nil means the column order
	Reduction bool        // track the reduction matrix V
	Logger    *zap.Logger // receives a Debug summary per reduction
	Label     string      // name attached to log entries
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the defaults: rows ordered like columns, no V,
// no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithRowOrder orders rows (the choice of low entry) by rows instead of the
// column order.
func WithRowOrder(rows Ranker) Option {
	return func(o *Options) { o.Rows = rows }
}

// WithReductionMatrix requests the change-of-basis matrix V.
func WithReductionMatrix() Option {
	return func(o *Options) { o.Reduction = true }
}

// WithLogger sets the logger. It panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.Logger = l }
}

// WithLabel names the reduction in log entries.
func WithLabel(label string) Option {
	return func(o *Options) { o.Label = label }
}
