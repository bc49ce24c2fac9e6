// SPDX-License-Identifier: MIT

package persistence

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sixpack/filtration"
	"github.com/katalvlaran/sixpack/gf2"
	"github.com/katalvlaran/sixpack/simplicial"
)

// SixPack holds the six reductions of one complex snapshot and the modules
// extracted from them. It is immutable once returned and safe for
// concurrent reads.
type SixPack struct {
	complex    *simplicial.Complex
	generation uint64
	weights    []float64 // snapshot, id -> weight
	sub        []bool    // snapshot, id -> in L
	order      *filtration.Order

	reductions map[ModuleName]*gf2.Result
	modules    map[ModuleName]*moduleIDs
}

// Compute runs the six reductions on c and extracts all six modules.
// The result is a snapshot: later mutations of c do not affect it, and
// Generation tells which state of c it describes.
func Compute(ctx context.Context, c *simplicial.Complex, opts ...Option) (*SixPack, error) {
	// 1) Options and validation.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if c == nil {
		return nil, ErrNilComplex
	}
	logger := cfg.Logger
	if logger == nil {
		logger = c.Logger()
	}

	// 2) Snapshot the filtration and build the orders once.
	n := c.Len()
	r := &runner{
		ctx:    ctx,
		c:      c,
		order:  filtration.New(c),
		logger: logger,
		sub:    make([]bool, n),
	}
	sp := &SixPack{
		complex:    c,
		generation: c.Generation(),
		weights:    make([]float64, n),
		sub:        r.sub,
		order:      r.order,
	}
	for id := 0; id < n; id++ {
		sp.weights[id] = c.WeightAt(id)
		r.sub[id] = c.InSubComplexAt(id)
	}

	// 3) Reductions.
	var err error
	if cfg.Parallel {
		err = r.parallel()
	} else {
		err = r.sequential()
	}
	if err != nil {
		return nil, err
	}
	sp.reductions = map[ModuleName]*gf2.Result{
		Complex:    r.complex,
		SubComplex: r.subComplex,
		Image:      r.image,
		Kernel:     r.kernel,
		Cokernel:   r.cokernel,
		Relative:   r.relative,
	}

	// 4) Birth/death extraction.
	sp.modules = extractAll(sp)

	logger.Debug("six-pack computed",
		zap.Int("simplices", n),
		zap.Int("sub_complex", countTrue(r.sub)),
		zap.Int("complex_pairs", len(sp.modules[Complex].pairs)),
		zap.Int("kernel_pairs", len(sp.modules[Kernel].pairs)),
		zap.Int("cokernel_pairs", len(sp.modules[Cokernel].pairs)),
		zap.Int("relative_pairs", len(sp.modules[Relative].pairs)))

	return sp, nil
}

// runner holds the inputs and per-reduction outputs of one Compute call.
// Each reduction step writes exactly one result field.
type runner struct {
	ctx    context.Context
	c      *simplicial.Complex
	order  *filtration.Order
	logger *zap.Logger
	sub    []bool

	complex, subComplex               *gf2.Result
	image, kernel, cokernel, relative *gf2.Result
}

func (r *runner) sequential() error {
	steps := []func() error{
		r.reduceComplex, r.reduceSubComplex,
		r.reduceImage, r.reduceKernel, r.reduceCokernel, r.reduceRelative,
	}
	for _, step := range steps {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

// parallel runs the two independent stages of the dependency graph
//
//	complex ──┬──► image, kernel, relative
//	          └──► cokernel ◄── sub_complex
//
// as two errgroup fan-outs.
func (r *runner) parallel() error {
	stages := [][]func() error{
		{r.reduceComplex, r.reduceSubComplex},
		{r.reduceImage, r.reduceKernel, r.reduceCokernel, r.reduceRelative},
	}
	for _, stage := range stages {
		g, gctx := errgroup.WithContext(r.ctx)
		for _, step := range stage {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return step()
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}

func (r *runner) reduce(label ModuleName, m gf2.Matrix, rows *filtration.Ranking, withV bool) (*gf2.Result, error) {
	opts := []gf2.Option{gf2.WithLogger(r.logger), gf2.WithLabel(string(label))}
	if rows != nil {
		opts = append(opts, gf2.WithRowOrder(rows))
	}
	if withV {
		opts = append(opts, gf2.WithReductionMatrix())
	}
	res, err := gf2.Reduce(m, r.order.Primary(), opts...)
	if err != nil {
		return nil, fmt.Errorf("persistence: %s reduction: %w", label, err)
	}

	return res, nil
}

// boundary returns the boundary matrix of the complex, restricted to the
// sub-complex when onlySub is set. Faces of a sub-complex simplex are in the
// sub-complex, so no row filtering is needed.
func (r *runner) boundary(onlySub bool) gf2.Matrix {
	m := make(gf2.Matrix, r.c.Len())
	for id := 0; id < r.c.Len(); id++ {
		if onlySub && !r.sub[id] {
			continue
		}
		m[id] = slices.Clone(gf2.Column(r.c.FacesAt(id)))
	}

	return m
}

func (r *runner) reduceComplex() (err error) {
	r.complex, err = r.reduce(Complex, r.boundary(false), nil, true)
	return err
}

func (r *runner) reduceSubComplex() (err error) {
	r.subComplex, err = r.reduce(SubComplex, r.boundary(true), nil, true)
	return err
}

// reduceImage re-reduces R(complex) with the sub-complex pushed first in the
// row order.
func (r *runner) reduceImage() (err error) {
	r.image, err = r.reduce(Image, r.complex.Reduced, r.order.SubComplexFirst(), false)
	return err
}

// reduceKernel reduces the cycle columns of V(complex).
func (r *runner) reduceKernel() (err error) {
	cycles := make(gf2.Matrix)
	for id, col := range r.complex.Reduced {
		if col.IsZero() {
			cycles[id] = r.complex.Reduction[id]
		}
	}
	r.kernel, err = r.reduce(Kernel, cycles, r.order.SubComplexFirst(), false)
	return err
}

// reduceCokernel swaps in V(sub_complex) for every cycle of L; all other
// columns come from R(complex).
func (r *runner) reduceCokernel() (err error) {
	m := make(gf2.Matrix, len(r.complex.Reduced))
	for id, col := range r.complex.Reduced {
		if subCol, inL := r.subComplex.Reduced[id]; inL && subCol.IsZero() {
			m[id] = r.subComplex.Reduction[id]
			continue
		}
		m[id] = col
	}
	r.cokernel, err = r.reduce(Cokernel, m, nil, false)
	return err
}

// reduceRelative drops L from R(complex), both as columns and as rows.
func (r *runner) reduceRelative() (err error) {
	outside := func(id int) bool { return !r.sub[id] }
	r.relative, err = r.reduce(Relative, r.complex.Reduced.Restrict(outside, outside), nil, false)
	return err
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}

	return n
}
