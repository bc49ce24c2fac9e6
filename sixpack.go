// SPDX-License-Identifier: MIT

package sixpack

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/sixpack/features"
	"github.com/katalvlaran/sixpack/floatcmp"
	"github.com/katalvlaran/sixpack/persistence"
	"github.com/katalvlaran/sixpack/simplex"
	"github.com/katalvlaran/sixpack/simplicial"
)

// ErrNilComplex indicates a Complex built around a nil model.
var ErrNilComplex = errors.New("sixpack: nil complex")

// Re-exported names so that callers of the facade rarely need the
// subpackages.
type (
	ModuleName = persistence.ModuleName
	Bar        = persistence.Bar
	BarOption  = persistence.BarOption
	ModuleDim  = persistence.ModuleDim
)

// The six-pack.
const (
	ModuleComplex    = persistence.Complex
	ModuleSubComplex = persistence.SubComplex
	ModuleImage      = persistence.Image
	ModuleKernel     = persistence.Kernel
	ModuleCokernel   = persistence.Cokernel
	ModuleRelative   = persistence.Relative
)

// Options configures a Complex.
type Options struct {
	Tolerance floatcmp.Tolerance
	Logger    *zap.Logger
	Parallel  bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns floatcmp.Default, a no-op logger and sequential
// reductions.
func DefaultOptions() Options {
	return Options{Tolerance: floatcmp.Default, Logger: zap.NewNop()}
}

// WithTolerance sets the closeness policy for weights. It panics on an
// invalid tolerance.
func WithTolerance(t floatcmp.Tolerance) Option {
	if err := t.Validate(); err != nil {
		panic(err.Error())
	}

	return func(o *Options) { o.Tolerance = t }
}

// WithLogger routes diagnostics of the model and of every computation to l.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("sixpack: WithLogger: logger must be non-nil")
	}

	return func(o *Options) { o.Logger = l }
}

// WithParallel runs independent reductions concurrently.
func WithParallel() Option {
	return func(o *Options) { o.Parallel = true }
}

// Complex is a filtered simplicial complex with a sub-complex and a lazily
// computed six-pack. The cached six-pack is dropped whenever the weights or
// the sub-complex change.
type Complex struct {
	mu     sync.Mutex
	model  *simplicial.Complex
	cfg    Options
	cached *persistence.SixPack
}

// FromSimplexList builds the complex generated by list with all weights 0.
func FromSimplexList(list []simplex.Simplex, opts ...Option) (*Complex, error) {
	cfg := gather(opts)
	m, err := simplicial.FromSimplexList(list, cfg.modelOptions()...)
	if err != nil {
		return nil, err
	}

	return &Complex{model: m, cfg: cfg}, nil
}

// FromWeightedSimplices builds the complex generated by the keys of weights
// and assigns them, with default weight 0 for the remaining faces.
func FromWeightedSimplices(weights map[simplex.Simplex]float64, opts ...Option) (*Complex, error) {
	cfg := gather(opts)
	m, err := simplicial.FromWeightedSimplices(weights, cfg.modelOptions()...)
	if err != nil {
		return nil, err
	}

	return &Complex{model: m, cfg: cfg}, nil
}

// Wrap puts a facade around an existing model. The model must not be mutated
// except through the facade afterwards.
func Wrap(model *simplicial.Complex, opts ...Option) (*Complex, error) {
	if model == nil {
		return nil, ErrNilComplex
	}
	cfg := gather(opts)
	cfg.Tolerance = model.Tolerance()

	return &Complex{model: model, cfg: cfg}, nil
}

func gather(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func (o Options) modelOptions() []simplicial.Option {
	return []simplicial.Option{simplicial.WithTolerance(o.Tolerance), simplicial.WithLogger(o.Logger)}
}

// Model returns the underlying complex. Mutating it directly is detected
// through its generation counter, but is not synchronized.
func (c *Complex) Model() *simplicial.Complex { return c.model }

// Compute returns the six-pack for the current state, computing it if the
// cached one is missing or stale.
func (c *Complex) Compute(ctx context.Context) (*persistence.SixPack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.computeLocked(ctx)
}

func (c *Complex) computeLocked(ctx context.Context) (*persistence.SixPack, error) {
	if c.cached != nil && c.cached.Generation() == c.model.Generation() {
		return c.cached, nil
	}
	c.cfg.Logger.Debug("computing six-pack",
		zap.Uint64("generation", c.model.Generation()),
		zap.Bool("stale", c.cached != nil))

	opts := []persistence.Option{persistence.WithLogger(c.cfg.Logger)}
	if c.cfg.Parallel {
		opts = append(opts, persistence.WithParallel())
	}
	sp, err := persistence.Compute(ctx, c.model, opts...)
	if err != nil {
		return nil, err
	}
	c.cached = sp

	return sp, nil
}

func (c *Complex) sixPack() (*persistence.SixPack, error) {
	return c.Compute(context.Background())
}

// Bars returns the bars of module, computing persistence first if needed.
func (c *Complex) Bars(module ModuleName, opts ...BarOption) ([]Bar, error) {
	sp, err := c.sixPack()
	if err != nil {
		return nil, err
	}

	return sp.Bars(module, opts...)
}

// BarsByDim groups the bars of module by dimension.
func (c *Complex) BarsByDim(module ModuleName, opts ...BarOption) (map[int][]Bar, error) {
	sp, err := c.sixPack()
	if err != nil {
		return nil, err
	}

	return sp.BarsByDim(module, opts...)
}

// All returns the bars of the whole six-pack.
func (c *Complex) All(opts ...BarOption) (map[ModuleName][]Bar, error) {
	sp, err := c.sixPack()
	if err != nil {
		return nil, err
	}

	return sp.All(opts...), nil
}

// FiniteOneNorm returns the total length of the finite bars of module in dim.
func (c *Complex) FiniteOneNorm(module ModuleName, dim int) (float64, error) {
	sp, err := c.sixPack()
	if err != nil {
		return 0, err
	}

	return sp.FiniteOneNorm(module, dim)
}

// Diagrams returns one bar list per selector.
func (c *Complex) Diagrams(selectors []ModuleDim, opts ...BarOption) ([][]Bar, error) {
	sp, err := c.sixPack()
	if err != nil {
		return nil, err
	}

	return sp.Diagrams(selectors, opts...)
}

// PersistencePairs ranks the finite non-trivial pairs of module in dim.
func (c *Complex) PersistencePairs(module ModuleName, dim int, sortBy features.SortBy) ([]features.Feature, error) {
	sp, err := c.sixPack()
	if err != nil {
		return nil, err
	}

	return features.PersistencePairs(sp, module, dim, sortBy)
}

// Representative returns a cycle of the class of module killed by death.
func (c *Complex) Representative(module ModuleName, death simplex.Simplex) ([]simplex.Simplex, error) {
	sp, err := c.sixPack()
	if err != nil {
		return nil, err
	}

	return features.Representative(sp, module, death)
}

// SetWeights assigns weights (def for unlisted simplices) and repairs
// monotonicity. See simplicial.Complex.SetWeights.
func (c *Complex) SetWeights(weights map[simplex.Simplex]float64, def float64) ([]simplicial.Warning, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.model.SetWeights(weights, def)
}

// SetSubComplex makes L the down-closure of generators.
func (c *Complex) SetSubComplex(generators []simplex.Simplex) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.model.SetSubComplex(generators)
}

// SetTotalSubComplex makes L the full sub-complex spanned by vertices.
func (c *Complex) SetTotalSubComplex(vertices []int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.model.SetTotalSubComplex(vertices)
}

// RepairMonotonicity runs the repair pass and returns the number of changed weights.
func (c *Complex) RepairMonotonicity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.model.RepairMonotonicity()
}

// Restrict returns a new facade on a subset of the simplices.
func (c *Complex) Restrict(keep []simplex.Simplex) (*Complex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.model.Restrict(keep)
	if err != nil {
		return nil, err
	}

	return &Complex{model: m, cfg: c.cfg}, nil
}
