// SPDX-License-Identifier: MIT

package filtration_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sixpack/filtration"
	"github.com/katalvlaran/sixpack/floatcmp"
	"github.com/katalvlaran/sixpack/simplex"
	"github.com/katalvlaran/sixpack/simplicial"
)

// table is a Source backed by plain slices.
type table struct {
	simplices []simplex.Simplex
	weights   []float64
	sub       []bool
	tol       floatcmp.Tolerance
}

func (t *table) Len() int                      { return len(t.simplices) }
func (t *table) At(id int) simplex.Simplex     { return t.simplices[id] }
func (t *table) WeightAt(id int) float64       { return t.weights[id] }
func (t *table) InSubComplexAt(id int) bool    { return t.sub != nil && t.sub[id] }
func (t *table) Tolerance() floatcmp.Tolerance { return t.tol }

func s(v ...int) simplex.Simplex { return simplex.MustNew(v...) }

func TestPrimary_WeightThenDimensionThenTuple(t *testing.T) {
	src := &table{
		simplices: []simplex.Simplex{s(0), s(1), s(2), s(0, 1), s(0, 2), s(1, 2)},
		weights:   []float64{1, 0, 1, 1, 2, 1},
		tol:       floatcmp.Default,
	}
	o := filtration.New(src)

	// (1)@0 | (0)@1 (2)@1 (0,1)@1 (1,2)@1 | (0,2)@2
	require.Equal(t, []int{1, 0, 2, 3, 5, 4}, o.Primary().Order())
}

func TestPrimary_CloseWeightsTie(t *testing.T) {
	src := &table{
		simplices: []simplex.Simplex{s(0), s(1)},
		weights:   []float64{1.0000000001, 1.0},
		tol:       floatcmp.Default,
	}
	require.Equal(t, []int{0, 1}, filtration.New(src).Primary().Order(), "close weights fall through to the vertex tuple")

	src.tol = floatcmp.Exact
	require.Equal(t, []int{1, 0}, filtration.New(src).Primary().Order())
}

func TestPrimary_ClassesAnchorAtFirstWeight(t *testing.T) {
	// 0.0 ~ 0.1 and 0.1 ~ 0.2, but 0.2 is not close to 0.0 and starts a new class.
	tol := floatcmp.Tolerance{Abs: 0.15}
	src := &table{
		simplices: []simplex.Simplex{s(0), s(1), s(2)},
		weights:   []float64{0.2, 0.1, 0.0},
		tol:       tol,
	}
	require.Equal(t, []int{1, 2, 0}, filtration.New(src).Primary().Order())

	src.tol = floatcmp.Exact
	require.Equal(t, []int{2, 1, 0}, filtration.New(src).Primary().Order())
}

func TestPrimary_ChainOfCloseWeights(t *testing.T) {
	// Forty vertices whose weights step by less than the tolerance, listed
	// heaviest first so the tuple order fights the weight order.
	tol := floatcmp.Tolerance{Abs: 0.15}
	src := &table{tol: tol}
	for i := 0; i < 40; i++ {
		src.simplices = append(src.simplices, s(i))
		src.weights = append(src.weights, float64(39-i)*0.1)
	}
	r := filtration.New(src).Primary()

	for a := 0; a < src.Len(); a++ {
		for b := 0; b < src.Len(); b++ {
			if r.Less(a, b) {
				require.True(t, tol.LessOrClose(src.weights[a], src.weights[b]),
					"%v@%g ranks before %v@%g", src.simplices[a], src.weights[a], src.simplices[b], src.weights[b])
			}
		}
	}

	// Classes are {0.0, 0.1}, {0.2, 0.3}, ...; inside a class the tuple decides.
	want := make([]int, 0, 40)
	for hi := 39; hi > 0; hi -= 2 {
		want = append(want, hi-1, hi)
	}
	require.Equal(t, want, r.Order())
}

func TestSubComplexFirst(t *testing.T) {
	src := &table{
		simplices: []simplex.Simplex{s(0), s(1), s(2), s(0, 1), s(1, 2)},
		weights:   []float64{0, 0, 0, 2, 1},
		sub:       []bool{false, true, true, false, true},
		tol:       floatcmp.Default,
	}
	o := filtration.New(src)

	require.Equal(t, []int{0, 1, 2, 4, 3}, o.Primary().Order())
	require.Equal(t, []int{1, 2, 4, 0, 3}, o.SubComplexFirst().Order())
}

func TestRanking(t *testing.T) {
	src := &table{
		simplices: []simplex.Simplex{s(0), s(1), s(0, 1)},
		weights:   []float64{3, 0, 3},
		tol:       floatcmp.Default,
	}
	r := filtration.New(src).Primary()

	require.Equal(t, 3, r.Len())
	pos, ok := r.Rank(0)
	require.True(t, ok)
	require.Equal(t, 1, pos)
	require.Equal(t, 0, r.ID(1))
	_, ok = r.Rank(3)
	require.False(t, ok)
	_, ok = r.Rank(-1)
	require.False(t, ok)
	require.True(t, r.Less(1, 0))
	require.False(t, r.Less(2, 0))

	ids := []int{2, 0, 1}
	r.Sort(ids)
	require.Equal(t, []int{1, 0, 2}, ids)

	order := r.Order()
	order[0] = 99
	require.Equal(t, 1, r.ID(0), "Order returns a copy")
}

func TestNew_FacesBeforeCofaces(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		weights := make(map[simplex.Simplex]float64)
		for i := 0; i < 8; i++ {
			a, b, c := rng.Intn(6), rng.Intn(6), rng.Intn(6)
			if a == b || b == c || a == c {
				continue
			}
			// Weights on a coarse grid so ties are common.
			weights[s(a, b, c)] = float64(rng.Intn(3)) / 2
		}
		if len(weights) == 0 {
			continue
		}
		c, err := simplicial.FromWeightedSimplices(weights)
		require.NoError(t, err)
		o := filtration.New(c)

		for _, r := range []*filtration.Ranking{o.Primary(), o.SubComplexFirst()} {
			for id := 0; id < c.Len(); id++ {
				for _, f := range c.FacesAt(id) {
					require.True(t, r.Less(f, id), "trial %d: face %v after %v", trial, c.At(f), c.At(id))
				}
			}
		}
	}
}
