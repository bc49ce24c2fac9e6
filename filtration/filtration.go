// SPDX-License-Identifier: MIT

// Package filtration builds the deterministic total orders over simplices
// that drive boundary-matrix reduction.
//
// Two orders are offered, both memoized as dense rank indices so that every
// comparison during one reduction sees the same tie-break:
//
//   - Primary: ascending (weight, dimension, vertex tuple). Weights within the
//     complex's tolerance of each other count as a tie and fall through to
//     dimension and then lexicographic order.
//   - SubComplexFirst: every sub-complex simplex before every other simplex,
//     then Primary. Used as the row order for image and kernel reductions.
//
// Weight ties are resolved by clustering: weights are sorted, and each weight
// that is not close to the first weight of the current class opens a new
// class. A class therefore spans at most one tolerance, and two simplices
// rank against their weights only when those weights are close. Because faces
// have smaller dimension than their cofaces and weights are monotone, faces
// always rank before cofaces.
package filtration

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/sixpack/floatcmp"
	"github.com/katalvlaran/sixpack/simplex"
)

// Source is the read-only view of a filtered complex the orders are built
// from. Ids are dense in [0, Len()); *simplicial.Complex satisfies it.
type Source interface {
	Len() int
	At(id int) simplex.Simplex
	WeightAt(id int) float64
	InSubComplexAt(id int) bool
	Tolerance() floatcmp.Tolerance
}

// Ranking is a memoized strict total order over simplex ids.
type Ranking struct {
	rank  []int // id -> position
	order []int // position -> id
}

// Rank returns the position of id. ok is false for ids the ranking does not cover.
func (r *Ranking) Rank(id int) (int, bool) {
	if id < 0 || id >= len(r.rank) {
		return 0, false
	}

	return r.rank[id], true
}

// ID returns the id at position pos.
func (r *Ranking) ID(pos int) int { return r.order[pos] }

// Len returns the number of ranked ids.
func (r *Ranking) Len() int { return len(r.order) }

// Order returns all ids in ascending rank.
func (r *Ranking) Order() []int { return slices.Clone(r.order) }

// Sort sorts ids in place by ascending rank. Every id must be covered.
func (r *Ranking) Sort(ids []int) {
	slices.SortFunc(ids, func(a, b int) int { return cmp.Compare(r.rank[a], r.rank[b]) })
}

// Less reports whether a ranks before b.
func (r *Ranking) Less(a, b int) bool { return r.rank[a] < r.rank[b] }

// Order holds both orders for one snapshot of a complex.
type Order struct {
	primary  *Ranking
	subFirst *Ranking
}

// New computes both rankings for the current weights and sub-complex of src.
// The result does not track later mutations of src.
func New(src Source) *Order {
	n := src.Len()
	tol := src.Tolerance()

	// 1) Cluster weights into tolerance classes. A class is anchored at its
	// smallest weight and never spans more than one tolerance.
	byWeight := make([]int, n)
	for i := range byWeight {
		byWeight[i] = i
	}
	slices.SortStableFunc(byWeight, func(a, b int) int { return cmp.Compare(src.WeightAt(a), src.WeightAt(b)) })
	class := make([]int, n)
	current := 0
	var anchor float64
	for i, id := range byWeight {
		w := src.WeightAt(id)
		if i == 0 {
			anchor = w
		} else if !tol.Close(w, anchor) {
			current++
			anchor = w
		}
		class[id] = current
	}

	// 2) Primary: (class, dimension, vertex tuple).
	primary := byWeight // reuse the buffer
	slices.SortFunc(primary, func(a, b int) int {
		if c := cmp.Compare(class[a], class[b]); c != 0 {
			return c
		}
		return simplex.CompareByDim(src.At(a), src.At(b))
	})

	// 3) SubComplexFirst: stable partition of the primary order.
	subFirst := make([]int, 0, n)
	for _, id := range primary {
		if src.InSubComplexAt(id) {
			subFirst = append(subFirst, id)
		}
	}
	for _, id := range primary {
		if !src.InSubComplexAt(id) {
			subFirst = append(subFirst, id)
		}
	}

	return &Order{primary: newRanking(primary), subFirst: newRanking(subFirst)}
}

func newRanking(order []int) *Ranking {
	rank := make([]int, len(order))
	for pos, id := range order {
		rank[id] = pos
	}

	return &Ranking{rank: rank, order: order}
}

// Primary returns the (weight, dimension, vertex tuple) ranking.
func (o *Order) Primary() *Ranking { return o.primary }

// SubComplexFirst returns the ranking with the sub-complex pushed first.
func (o *Order) SubComplexFirst() *Ranking { return o.subFirst }
