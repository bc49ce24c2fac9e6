// SPDX-License-Identifier: MIT

package simplicial

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/sixpack/simplex"
)

// SetWeights replaces the weight function: simplices present in weights get
// that value, every other simplex gets def. The monotonicity repair pass runs
// afterwards.
//
// Validation happens before anything is written, so on error the complex is
// unchanged:
//   - a key that is not a simplex of the complex yields ErrUnknownSimplex;
//   - a NaN weight yields ErrInvalidWeight.
//
// Weights below def are applied but reported as soft Warnings (also logged
// at Warn level).
func (c *Complex) SetWeights(weights map[simplex.Simplex]float64, def float64) ([]Warning, error) {
	if math.IsNaN(def) {
		return nil, fmt.Errorf("%w: default", ErrInvalidWeight)
	}

	// 1) Validate every key and value up front.
	next := make([]float64, len(c.weights))
	for i := range next {
		next[i] = def
	}
	var warnings []Warning
	for s, w := range weights {
		id, ok := c.index[s]
		if !ok {
			return nil, fmt.Errorf("%w: cannot weigh %v", ErrUnknownSimplex, s)
		}
		if math.IsNaN(w) {
			return nil, fmt.Errorf("%w: simplex %v", ErrInvalidWeight, s)
		}
		if w < def {
			warnings = append(warnings, Warning{Simplex: s, Weight: w, Default: def})
		}
		next[id] = w
	}

	// 2) Commit, then repair.
	c.weights = next
	c.generation++
	c.RepairMonotonicity()

	// Map iteration order is random; report warnings deterministically.
	slices.SortFunc(warnings, func(a, b Warning) int { return simplex.CompareByDim(a.Simplex, b.Simplex) })
	for _, w := range warnings {
		c.logger.Warn("weight below default",
			zap.Stringer("simplex", w.Simplex),
			zap.Float64("weight", w.Weight),
			zap.Float64("default", w.Default))
	}

	return warnings, nil
}

// RepairMonotonicity is the explicit repair pass for the face-monotonicity
// invariant. Simplices are visited from the highest id (highest dimension)
// down; each weight is replaced by
//
//	Tolerance().EnsureSmallerOrEqual(weight, weights of its cofaces...)
//
// so a weight above its coface minimum is clamped down to it, and a weight
// merely close to that minimum is snapped onto it. Exactly representable
// valid inputs are left untouched.
//
// It returns the number of weights changed and bumps Generation when that
// number is positive.
func (c *Complex) RepairMonotonicity() int {
	changed := 0
	cofaceWeights := make([]float64, 0, 8)
	for id := len(c.simplices) - 1; id >= 0; id-- {
		cofaceWeights = cofaceWeights[:0]
		for _, cid := range c.coboundary[id] {
			cofaceWeights = append(cofaceWeights, c.weights[cid])
		}
		repaired := c.tol.EnsureSmallerOrEqual(c.weights[id], cofaceWeights...)
		if repaired != c.weights[id] {
			c.logger.Debug("weight repaired",
				zap.Stringer("simplex", c.simplices[id]),
				zap.Float64("from", c.weights[id]),
				zap.Float64("to", repaired))
			c.weights[id] = repaired
			changed++
		}
	}
	if changed > 0 {
		c.generation++
	}

	return changed
}

// CheckMonotonicity verifies w(face) <= w(coface) up to the tolerance for
// every face pair and reports the first violation as ErrNotMonotone.
func (c *Complex) CheckMonotonicity() error {
	for id, faces := range c.boundary {
		for _, f := range faces {
			if !c.tol.LessOrClose(c.weights[f], c.weights[id]) {
				return fmt.Errorf("%w: w%v=%g > w%v=%g", ErrNotMonotone,
					c.simplices[f], c.weights[f], c.simplices[id], c.weights[id])
			}
		}
	}

	return nil
}

// SetSubComplex replaces the sub-complex with the down-closure of the given
// generators. If any generator is not in the complex ErrUnknownSimplex is
// returned and the sub-complex is unchanged.
func (c *Complex) SetSubComplex(generators []simplex.Simplex) error {
	next := make([]bool, len(c.simplices))
	stack := make([]int, 0, len(generators))
	for _, g := range generators {
		id, ok := c.index[g]
		if !ok {
			return fmt.Errorf("%w: cannot add %v to sub-complex", ErrUnknownSimplex, g)
		}
		if !next[id] {
			next[id] = true
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, f := range c.boundary[id] {
			if !next[f] {
				next[f] = true
				stack = append(stack, f)
			}
		}
	}
	c.sub = next
	c.generation++

	return nil
}

// SetTotalSubComplex makes the sub-complex the set of all simplices whose
// vertices all belong to the given vertex set (the full sub-complex spanned
// by those vertices). Unknown vertices are ignored.
func (c *Complex) SetTotalSubComplex(vertices []int) {
	set := make(map[int]struct{}, len(vertices))
	for _, v := range vertices {
		set[v] = struct{}{}
	}
	next := make([]bool, len(c.simplices))
	for id, s := range c.simplices {
		next[id] = s.SubsetOf(set)
	}
	c.sub = next
	c.generation++
}
