// SPDX-License-Identifier: MIT

package simplicial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/sixpack/floatcmp"
	"github.com/katalvlaran/sixpack/simplex"
	"github.com/katalvlaran/sixpack/simplicial"
)

func s(v ...int) simplex.Simplex { return simplex.MustNew(v...) }

func nan() float64 { return math.NaN() }

// mixed is a small construction fixture:
// two triangles glued along an edge, a third one, and some dangling edges.
func mixed(t *testing.T, opts ...simplicial.Option) *simplicial.Complex {
	t.Helper()
	c, err := simplicial.FromSimplexList([]simplex.Simplex{
		s(1, 2, 3), s(2, 3, 4), s(3, 4, 5), s(4, 6), s(5, 6), s(3, 7),
	}, opts...)
	require.NoError(t, err)

	return c
}

func TestFromSimplexList_Closure(t *testing.T) {
	c := mixed(t)

	require.Equal(t, 2, c.Dimension())
	require.Equal(t, 7, c.CountOfDim(0))
	// Edges: 12 13 23 24 34 35 45 46 56 37
	require.Equal(t, 10, c.CountOfDim(1))
	require.Equal(t, 3, c.CountOfDim(2))
	require.Equal(t, 20, c.Len())
	require.Equal(t, []simplex.Simplex{s(1, 2, 3), s(2, 3, 4), s(3, 4, 5)}, c.SimplicesOfDim(2))
	require.Nil(t, c.SimplicesOfDim(3))

	b, err := c.Boundary(s(2, 3, 4))
	require.NoError(t, err)
	require.Equal(t, []simplex.Simplex{s(2, 3), s(2, 4), s(3, 4)}, b)

	cb, err := c.Coboundary(s(3, 4))
	require.NoError(t, err)
	require.Equal(t, []simplex.Simplex{s(2, 3, 4), s(3, 4, 5)}, cb)

	extra, err := c.ExtraVertices(s(3, 4))
	require.NoError(t, err)
	require.Equal(t, []int{2, 5}, extra)

	vb, err := c.Boundary(s(7))
	require.NoError(t, err)
	require.Empty(t, vb)
}

func TestFromSimplexList_IDsFollowDimensionOrder(t *testing.T) {
	c := mixed(t)
	all := c.Simplices()
	for id := range all {
		require.Equal(t, all[id], c.At(id))
		for _, f := range c.FacesAt(id) {
			require.Less(t, f, id, "faces precede cofaces")
		}
	}
}

func TestFromSimplexList_Errors(t *testing.T) {
	_, err := simplicial.FromSimplexList(nil)
	require.ErrorIs(t, err, simplicial.ErrEmptyComplex)

	_, err = simplicial.FromSimplexList([]simplex.Simplex{{}})
	require.ErrorIs(t, err, simplex.ErrEmpty)
}

func TestFromWeightedSimplices(t *testing.T) {
	c, err := simplicial.FromWeightedSimplices(map[simplex.Simplex]float64{
		s(0, 1, 2): 1,
		s(0, 1):    0.5,
	})
	require.NoError(t, err)
	require.Equal(t, 7, c.Len())

	w, err := c.Weight(s(0, 1, 2))
	require.NoError(t, err)
	require.Equal(t, 1.0, w)
	w, _ = c.Weight(s(0, 1))
	require.Equal(t, 0.5, w)
	w, _ = c.Weight(s(1, 2))
	require.Equal(t, 0.0, w, "unspecified simplices get the default")

	_, err = c.Weight(s(5))
	require.ErrorIs(t, err, simplicial.ErrUnknownSimplex)
}

func TestSetWeights_UnknownSimplexLeavesComplexUnchanged(t *testing.T) {
	c := mixed(t)
	_, err := c.SetWeights(map[simplex.Simplex]float64{s(1, 2): 3}, 0)
	require.NoError(t, err)
	before := c.Weights()
	gen := c.Generation()

	_, err = c.SetWeights(map[simplex.Simplex]float64{s(1, 2): 9, s(1, 7): 1}, 0)
	require.ErrorIs(t, err, simplicial.ErrUnknownSimplex)
	require.Equal(t, before, c.Weights())
	require.Equal(t, gen, c.Generation())
}

func TestSetWeights_NaN(t *testing.T) {
	c := mixed(t)
	_, err := c.SetWeights(map[simplex.Simplex]float64{s(1): nan()}, 0)
	require.ErrorIs(t, err, simplicial.ErrInvalidWeight)
	_, err = c.SetWeights(nil, nan())
	require.ErrorIs(t, err, simplicial.ErrInvalidWeight)
}

func TestSetWeights_RepairsMonotonicity(t *testing.T) {
	c := mixed(t)
	// Vertex 1 heavier than its cofaces; edge (1,2) heavier than triangle (1,2,3).
	_, err := c.SetWeights(map[simplex.Simplex]float64{
		s(1):       5,
		s(1, 2):    4,
		s(1, 2, 3): 2,
		s(1, 3):    1,
	}, 1)
	require.NoError(t, err)
	require.NoError(t, c.CheckMonotonicity())

	w, _ := c.Weight(s(1, 2))
	require.Equal(t, 2.0, w, "clamped to triangle weight")
	w, _ = c.Weight(s(1))
	require.Equal(t, 1.0, w, "clamped to min of cofaces (1,2)=2, (1,3)=1")

	requireMonotone(t, c)
}

func TestSetWeights_WarnsBelowDefault(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := mixed(t, simplicial.WithLogger(zap.New(core)))

	warnings, err := c.SetWeights(map[simplex.Simplex]float64{s(1): -1, s(2): 3}, 0)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, s(1), warnings[0].Simplex)
	require.ErrorIs(t, warnings[0], simplicial.ErrWeightBelowDefault)
	require.Equal(t, 1, logs.FilterMessage("weight below default").Len())

	w, _ := c.Weight(s(1))
	require.Equal(t, -1.0, w, "soft warning still applies the value")
}

func TestRepairMonotonicity_NearBoundary(t *testing.T) {
	weights := map[simplex.Simplex]float64{
		s(0, 1, 2): 1,
		s(0, 1):    1 - 1e-10, // close to, but below, its coface
		s(0, 2):    0.5,       // clearly below
		s(1, 2):    1,         // exactly equal
	}

	c, err := simplicial.FromWeightedSimplices(weights)
	require.NoError(t, err)
	w, _ := c.Weight(s(0, 1))
	require.Equal(t, 1.0, w, "near-equal weight snapped onto the coface minimum")
	w, _ = c.Weight(s(0, 2))
	require.Equal(t, 0.5, w)
	w, _ = c.Weight(s(1, 2))
	require.Equal(t, 1.0, w)

	exact, err := simplicial.FromWeightedSimplices(weights, simplicial.WithTolerance(floatcmp.Exact))
	require.NoError(t, err)
	w, _ = exact.Weight(s(0, 1))
	require.Equal(t, 1-1e-10, w, "exact policy keeps the value")

	require.Zero(t, c.RepairMonotonicity(), "repair is idempotent")
}

func TestCheckMonotonicity_HoldsAfterSetWeights(t *testing.T) {
	c := mixed(t, simplicial.WithTolerance(floatcmp.Exact))
	_, err := c.SetWeights(map[simplex.Simplex]float64{s(1, 2, 3): 1}, 0)
	require.NoError(t, err)
	require.NoError(t, c.CheckMonotonicity())
}

func TestSetSubComplex_DownClosure(t *testing.T) {
	c := mixed(t)
	gen := c.Generation()
	require.NoError(t, c.SetSubComplex([]simplex.Simplex{s(2, 3, 4), s(3, 7)}))
	require.Greater(t, c.Generation(), gen)

	require.Equal(t, []simplex.Simplex{
		s(2), s(3), s(4), s(7),
		s(2, 3), s(2, 4), s(3, 4), s(3, 7),
		s(2, 3, 4),
	}, c.SubComplexSimplices())

	for _, sub := range c.SubComplexSimplices() {
		faces, err := c.Boundary(sub)
		require.NoError(t, err)
		for _, f := range faces {
			require.True(t, c.InSubComplex(f), "%v face of %v", f, sub)
		}
	}
}

func TestSetSubComplex_UnknownSimplex(t *testing.T) {
	c := mixed(t)
	require.NoError(t, c.SetSubComplex([]simplex.Simplex{s(5, 6)}))
	before := c.SubComplexSimplices()

	err := c.SetSubComplex([]simplex.Simplex{s(1, 2), s(1, 6)})
	require.ErrorIs(t, err, simplicial.ErrUnknownSimplex)
	require.Equal(t, before, c.SubComplexSimplices())
}

func TestSetTotalSubComplex(t *testing.T) {
	c := mixed(t)
	c.SetTotalSubComplex([]int{2, 3, 4, 99})
	require.Equal(t, []simplex.Simplex{
		s(2), s(3), s(4), s(2, 3), s(2, 4), s(3, 4), s(2, 3, 4),
	}, c.SubComplexSimplices())
}

func TestRestrict(t *testing.T) {
	c := mixed(t)
	_, err := c.SetWeights(map[simplex.Simplex]float64{s(1, 2, 3): 2}, 1)
	require.NoError(t, err)
	require.NoError(t, c.SetSubComplex([]simplex.Simplex{s(1, 2)}))

	r, err := c.Restrict([]simplex.Simplex{s(1, 2, 3), s(1, 2), s(1, 3), s(1)})
	require.NoError(t, err)
	require.Equal(t, 4, r.Len())

	b, err := r.Boundary(s(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, []simplex.Simplex{s(1, 2), s(1, 3)}, b, "(2,3) was not kept")
	b, _ = r.Boundary(s(1, 2))
	require.Equal(t, []simplex.Simplex{s(1)}, b)

	w, _ := r.Weight(s(1, 2, 3))
	require.Equal(t, 2.0, w)
	require.Equal(t, []simplex.Simplex{s(1), s(1, 2)}, r.SubComplexSimplices())

	_, err = c.Restrict([]simplex.Simplex{s(8)})
	require.ErrorIs(t, err, simplicial.ErrUnknownSimplex)
	_, err = c.Restrict(nil)
	require.ErrorIs(t, err, simplicial.ErrEmptyComplex)
}

func TestChainBoundary(t *testing.T) {
	c := mixed(t)
	// ∂((1,2,3)+(2,3,4)) = (1,2)+(1,3)+(2,4)+(3,4); (2,3) cancels.
	b, err := c.ChainBoundary([]simplex.Simplex{s(1, 2, 3), s(2, 3, 4)})
	require.NoError(t, err)
	require.Equal(t, []simplex.Simplex{s(1, 2), s(1, 3), s(2, 4), s(3, 4)}, b)

	// Boundary of a boundary vanishes.
	bb, err := c.ChainBoundary(b)
	require.NoError(t, err)
	require.Empty(t, bb)

	_, err = c.ChainBoundary([]simplex.Simplex{s(0)})
	require.ErrorIs(t, err, simplicial.ErrUnknownSimplex)
}

func TestWithTolerance_PanicsOnInvalid(t *testing.T) {
	require.Panics(t, func() { simplicial.WithTolerance(floatcmp.Tolerance{Rel: -1}) })
	require.Panics(t, func() { simplicial.WithLogger(nil) })
}

func requireMonotone(t *testing.T, c *simplicial.Complex) {
	t.Helper()
	for _, sx := range c.Simplices() {
		w, err := c.Weight(sx)
		require.NoError(t, err)
		cof, err := c.Coboundary(sx)
		require.NoError(t, err)
		for _, co := range cof {
			cw, _ := c.Weight(co)
			require.LessOrEqual(t, w, cw, "%v <= %v", sx, co)
		}
	}
}
