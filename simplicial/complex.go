// SPDX-License-Identifier: MIT

package simplicial

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/sixpack/floatcmp"
	"github.com/katalvlaran/sixpack/simplex"
)

// Complex is a filtered simplicial complex with a down-closed sub-complex.
//
// Simplices live in an arena indexed by id in [0, Len()). The id-level
// accessors (At, WeightAt, FacesAt, ...) exist for the persistence
// machinery; everything else speaks simplex.Simplex.
//
// A Complex is not safe for concurrent mutation. Concurrent reads are safe.
type Complex struct {
	simplices  []simplex.Simplex       // id -> simplex, sorted by (dim, lex)
	index      map[simplex.Simplex]int // simplex -> id
	byDim      [][]int                 // dimension -> ascending ids
	boundary   [][]int                 // id -> ascending face ids present in the complex
	coboundary [][]int                 // id -> ascending coface ids

	weights []float64 // id -> filtration value
	sub     []bool    // id -> member of the sub-complex

	tol        floatcmp.Tolerance
	logger     *zap.Logger
	generation uint64
}

// FromSimplexList builds the complex generated by the given simplices: every
// face of every listed simplex is included. All weights start at 0 and the
// sub-complex starts empty.
func FromSimplexList(list []simplex.Simplex, opts ...Option) (*Complex, error) {
	if len(list) == 0 {
		return nil, ErrEmptyComplex
	}
	for _, s := range list {
		if s.IsZero() {
			return nil, fmt.Errorf("%w: zero simplex in list", simplex.ErrEmpty)
		}
	}

	return build(simplex.Closure(list), gatherOptions(opts)), nil
}

// FromWeightedSimplices builds the complex generated by the keys of weights
// and assigns the weights with SetWeights(weights, 0). Soft warnings are
// logged at Warn level.
func FromWeightedSimplices(weights map[simplex.Simplex]float64, opts ...Option) (*Complex, error) {
	list := slices.Collect(maps.Keys(weights))
	c, err := FromSimplexList(list, opts...)
	if err != nil {
		return nil, err
	}
	if _, err = c.SetWeights(weights, 0); err != nil {
		return nil, err
	}

	return c, nil
}

// build lays out the arena for a sorted simplex list. Faces missing from the
// list are left out of the boundary, which only happens for Restrict.
func build(sorted []simplex.Simplex, cfg Options) *Complex {
	n := len(sorted)
	c := &Complex{
		simplices:  sorted,
		index:      make(map[simplex.Simplex]int, n),
		boundary:   make([][]int, n),
		coboundary: make([][]int, n),
		weights:    make([]float64, n),
		sub:        make([]bool, n),
		tol:        cfg.Tolerance,
		logger:     cfg.Logger,
	}
	for id, s := range sorted {
		c.index[s] = id
		for len(c.byDim) <= s.Dim() {
			c.byDim = append(c.byDim, nil)
		}
		c.byDim[s.Dim()] = append(c.byDim[s.Dim()], id)
	}
	for id, s := range sorted {
		for _, f := range s.Faces() {
			fid, ok := c.index[f]
			if !ok {
				continue
			}
			c.boundary[id] = append(c.boundary[id], fid)
			c.coboundary[fid] = append(c.coboundary[fid], id)
		}
	}
	// Faces are visited in lexicographic order within one dimension, which
	// matches id order, and cofaces are appended in ascending id order.

	return c
}

// Restrict returns a new complex on the given simplices. Boundaries keep only
// faces that are themselves kept, weights are copied and the sub-complex is
// intersected with the kept set. The receiver is not modified.
func (c *Complex) Restrict(keep []simplex.Simplex) (*Complex, error) {
	set := make(map[simplex.Simplex]struct{}, len(keep))
	for _, s := range keep {
		if _, ok := c.index[s]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownSimplex, s)
		}
		set[s] = struct{}{}
	}
	if len(set) == 0 {
		return nil, ErrEmptyComplex
	}
	sorted := slices.Collect(maps.Keys(set))
	simplex.Sort(sorted)

	r := build(sorted, Options{Tolerance: c.tol, Logger: c.logger})
	for id, s := range sorted {
		old := c.index[s]
		r.weights[id] = c.weights[old]
		r.sub[id] = c.sub[old]
	}

	return r, nil
}

// Len returns the number of simplices.
func (c *Complex) Len() int { return len(c.simplices) }

// Dimension returns the largest simplex dimension, or -1 for an empty complex.
func (c *Complex) Dimension() int { return len(c.byDim) - 1 }

// Tolerance returns the configured closeness policy.
func (c *Complex) Tolerance() floatcmp.Tolerance { return c.tol }

// Logger returns the configured logger.
func (c *Complex) Logger() *zap.Logger { return c.logger }

// Generation identifies the current filtration and sub-complex. It changes
// after every successful weight or sub-complex mutation.
func (c *Complex) Generation() uint64 { return c.generation }

// Contains reports whether s is a simplex of the complex.
func (c *Complex) Contains(s simplex.Simplex) bool {
	_, ok := c.index[s]
	return ok
}

// ID returns the arena id of s.
func (c *Complex) ID(s simplex.Simplex) (int, bool) {
	id, ok := c.index[s]
	return id, ok
}

// At returns the simplex with the given id.
func (c *Complex) At(id int) simplex.Simplex { return c.simplices[id] }

// WeightAt returns the weight of the simplex with the given id.
func (c *Complex) WeightAt(id int) float64 { return c.weights[id] }

// InSubComplexAt reports sub-complex membership by id.
func (c *Complex) InSubComplexAt(id int) bool { return c.sub[id] }

// FacesAt returns the face ids of id. The slice is shared; do not modify it.
func (c *Complex) FacesAt(id int) []int { return c.boundary[id] }

// CofacesAt returns the coface ids of id. The slice is shared; do not modify it.
func (c *Complex) CofacesAt(id int) []int { return c.coboundary[id] }

// Simplices returns all simplices sorted by dimension, then lexicographically.
func (c *Complex) Simplices() []simplex.Simplex { return slices.Clone(c.simplices) }

// SimplicesOfDim returns the simplices of dimension d in lexicographic order.
func (c *Complex) SimplicesOfDim(d int) []simplex.Simplex {
	if d < 0 || d >= len(c.byDim) {
		return nil
	}

	return c.toSimplices(c.byDim[d])
}

// CountOfDim returns the number of simplices of dimension d.
func (c *Complex) CountOfDim(d int) int {
	if d < 0 || d >= len(c.byDim) {
		return 0
	}

	return len(c.byDim[d])
}

// InSubComplex reports whether s belongs to the sub-complex.
func (c *Complex) InSubComplex(s simplex.Simplex) bool {
	id, ok := c.index[s]
	return ok && c.sub[id]
}

// SubComplexSimplices returns the sub-complex sorted by dimension, then lexicographically.
func (c *Complex) SubComplexSimplices() []simplex.Simplex {
	out := make([]simplex.Simplex, 0)
	for id, in := range c.sub {
		if in {
			out = append(out, c.simplices[id])
		}
	}

	return out
}

// Weight returns the filtration value of s.
func (c *Complex) Weight(s simplex.Simplex) (float64, error) {
	id, ok := c.index[s]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownSimplex, s)
	}

	return c.weights[id], nil
}

// Weights returns a copy of the whole weight function.
func (c *Complex) Weights() map[simplex.Simplex]float64 {
	out := make(map[simplex.Simplex]float64, len(c.simplices))
	for id, s := range c.simplices {
		out[s] = c.weights[id]
	}

	return out
}

// Boundary returns the faces of s that are in the complex.
func (c *Complex) Boundary(s simplex.Simplex) ([]simplex.Simplex, error) {
	id, ok := c.index[s]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSimplex, s)
	}

	return c.toSimplices(c.boundary[id]), nil
}

// Coboundary returns the cofaces of s.
func (c *Complex) Coboundary(s simplex.Simplex) ([]simplex.Simplex, error) {
	id, ok := c.index[s]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSimplex, s)
	}

	return c.toSimplices(c.coboundary[id]), nil
}

// ExtraVertices returns, for each coface of s in ascending order, the one
// vertex it adds to s.
func (c *Complex) ExtraVertices(s simplex.Simplex) ([]int, error) {
	id, ok := c.index[s]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSimplex, s)
	}
	out := make([]int, 0, len(c.coboundary[id]))
	for _, cid := range c.coboundary[id] {
		for _, v := range c.simplices[cid].Vertices() {
			if !s.Contains(v) {
				out = append(out, v)
				break
			}
		}
	}

	return out, nil
}

// ChainBoundary returns the GF(2) boundary of a chain: every face occurring
// an odd number of times among the boundaries of the chain's simplices.
// Duplicate simplices in the chain cancel.
func (c *Complex) ChainBoundary(chain []simplex.Simplex) ([]simplex.Simplex, error) {
	parity := make(map[int]bool)
	for _, s := range chain {
		id, ok := c.index[s]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownSimplex, s)
		}
		for _, f := range c.boundary[id] {
			parity[f] = !parity[f]
		}
	}
	ids := make([]int, 0, len(parity))
	for f, odd := range parity {
		if odd {
			ids = append(ids, f)
		}
	}
	slices.Sort(ids)

	return c.toSimplices(ids), nil
}

func (c *Complex) toSimplices(ids []int) []simplex.Simplex {
	out := make([]simplex.Simplex, len(ids))
	for i, id := range ids {
		out[i] = c.simplices[id]
	}

	return out
}
