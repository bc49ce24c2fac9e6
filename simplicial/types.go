// SPDX-License-Identifier: MIT

package simplicial

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/sixpack/floatcmp"
	"github.com/katalvlaran/sixpack/simplex"
)

// Sentinel errors returned by the simplicial package.
var (
	// ErrEmptyComplex indicates that a complex was requested with no simplices.
	ErrEmptyComplex = errors.New("simplicial: no simplices given")

	// ErrUnknownSimplex indicates that a simplex is not part of the complex.
	ErrUnknownSimplex = errors.New("simplicial: simplex not in complex")

	// ErrInvalidWeight indicates a NaN filtration weight.
	ErrInvalidWeight = errors.New("simplicial: weight is NaN")

	// ErrNotMonotone indicates that a face is heavier than one of its cofaces.
	ErrNotMonotone = errors.New("simplicial: weights are not monotone")

	// ErrWeightBelowDefault marks a weight smaller than the default weight
	// passed to SetWeights. It is only ever reported through Warning.
	ErrWeightBelowDefault = errors.New("simplicial: weight lower than default")
)

const panicNilLogger = "simplicial: WithLogger: logger must be non-nil"

// Warning is a soft, non-fatal diagnostic produced by weight assignment.
// The offending weight is still applied.
type Warning struct {
	Simplex simplex.Simplex
	Weight  float64
	Default float64
}

// Error implements error so that a Warning can be logged or wrapped.
func (w Warning) Error() string {
	return fmt.Sprintf("%v: simplex %v weight %g < default %g", ErrWeightBelowDefault, w.Simplex, w.Weight, w.Default)
}

// Unwrap exposes ErrWeightBelowDefault to errors.Is.
func (w Warning) Unwrap() error { return ErrWeightBelowDefault }

// Options configures a Complex.
type Options struct {
	Tolerance floatcmp.Tolerance // closeness policy for weights
	Logger    *zap.Logger        // diagnostics sink; never nil after gathering
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given:
// floatcmp.Default tolerance and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Tolerance: floatcmp.Default,
		Logger:    zap.NewNop(),
	}
}

// WithTolerance sets the weight closeness policy. It panics on a negative or
// non-finite tolerance, which is a programming error.
func WithTolerance(t floatcmp.Tolerance) Option {
	if err := t.Validate(); err != nil {
		panic(err.Error())
	}

	return func(o *Options) { o.Tolerance = t }
}

// WithLogger routes diagnostics (repairs, soft warnings) to l.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.Logger = l }
}

func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
