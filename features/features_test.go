// SPDX-License-Identifier: MIT

package features_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sixpack/features"
	"github.com/katalvlaran/sixpack/persistence"
	"github.com/katalvlaran/sixpack/simplex"
	"github.com/katalvlaran/sixpack/simplicial"
)

func s(v ...int) simplex.Simplex { return simplex.MustNew(v...) }

func sixPack(t *testing.T, weights map[simplex.Simplex]float64, sub []simplex.Simplex) *persistence.SixPack {
	t.Helper()
	c, err := simplicial.FromWeightedSimplices(weights)
	require.NoError(t, err)
	require.NoError(t, c.SetSubComplex(sub))
	sp, err := persistence.Compute(context.Background(), c)
	require.NoError(t, err)

	return sp
}

// twoTriangles has two disjoint hollow triangles filled at 1 and 4.
func twoTriangles(t *testing.T) *persistence.SixPack {
	return sixPack(t, map[simplex.Simplex]float64{s(0, 1, 2): 1, s(3, 4, 5): 4}, nil)
}

// coneOverTriangle is a triangle (0,1,2) in L filled at 2, coned off in K
// over vertex 3 at 1. The boundary cycle of L dies in K at 1 and in L at 2.
func coneOverTriangle(t *testing.T) *persistence.SixPack {
	return sixPack(t, map[simplex.Simplex]float64{
		s(0, 1, 2): 2, s(0, 1, 3): 1, s(0, 2, 3): 1, s(1, 2, 3): 1,
	}, []simplex.Simplex{s(0, 1, 2)})
}

func TestPersistencePairs_ByPersistence(t *testing.T) {
	sp := twoTriangles(t)

	got, err := features.PersistencePairs(sp, persistence.Complex, 1, features.ByPersistence())
	require.NoError(t, err)
	require.Equal(t, []features.Feature{
		{Pair: persistence.Pair{Birth: s(4, 5), Death: s(3, 4, 5)}, Birth: 0, Death: 4},
		{Pair: persistence.Pair{Birth: s(1, 2), Death: s(0, 1, 2)}, Birth: 0, Death: 1},
	}, got)

	// All dimension-0 pairs die at 0 and are trivial.
	got, err = features.PersistencePairs(sp, persistence.Complex, 0, features.ByPersistence())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPersistencePairs_ByProximity(t *testing.T) {
	sp := twoTriangles(t)

	got, err := features.PersistencePairs(sp, persistence.Complex, 1, features.ByProximity(0, 3.5))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, s(3, 4, 5), got[0].Pair.Death)

	got, err = features.PersistencePairs(sp, persistence.Complex, 1, features.ByProximity(0, 1.2))
	require.NoError(t, err)
	require.Equal(t, s(0, 1, 2), got[0].Pair.Death)
	require.InDelta(t, 1.0, got[0].Persistence(), 1e-12)
}

func TestPersistencePairs_KernelAndCokernel(t *testing.T) {
	sp := coneOverTriangle(t)

	ker, err := features.PersistencePairs(sp, persistence.Kernel, 1, features.ByPersistence())
	require.NoError(t, err)
	require.Equal(t, []features.Feature{
		{Pair: persistence.Pair{Birth: s(1, 2, 3), Death: s(0, 1, 2)}, Birth: 1, Death: 2},
	}, ker)

	cok, err := features.PersistencePairs(sp, persistence.Cokernel, 1, features.ByPersistence())
	require.NoError(t, err)
	require.Equal(t, []features.Feature{
		{Pair: persistence.Pair{Birth: s(1, 3), Death: s(0, 1, 3)}, Birth: 0, Death: 1},
		{Pair: persistence.Pair{Birth: s(2, 3), Death: s(0, 2, 3)}, Birth: 0, Death: 1},
	}, cok)
}

func TestRepresentative(t *testing.T) {
	sp := coneOverTriangle(t)
	boundary := []simplex.Simplex{s(0, 1), s(0, 2), s(1, 2)}

	for _, tc := range []struct {
		module persistence.ModuleName
		death  simplex.Simplex
	}{
		{persistence.Complex, s(1, 2, 3)},
		{persistence.Image, s(1, 2, 3)},
		{persistence.SubComplex, s(0, 1, 2)},
		{persistence.Kernel, s(0, 1, 2)},
	} {
		got, err := features.Representative(sp, tc.module, tc.death)
		require.NoError(t, err, tc.module)
		require.Equal(t, boundary, got, tc.module)
	}
}

func TestRepresentative_Errors(t *testing.T) {
	sp := coneOverTriangle(t)

	_, err := features.Representative(sp, persistence.Cokernel, s(0, 1, 3))
	require.ErrorIs(t, err, features.ErrNotImplemented)
	_, err = features.Representative(sp, persistence.Relative, s(0, 1, 3))
	require.ErrorIs(t, err, features.ErrNotImplemented)

	// (0,1,2) fills a sphere in K; it kills nothing there.
	_, err = features.Representative(sp, persistence.Complex, s(0, 1, 2))
	require.ErrorIs(t, err, features.ErrNotDeath)

	_, err = features.Representative(sp, persistence.Complex, s(7, 8))
	require.ErrorIs(t, err, simplicial.ErrUnknownSimplex)

	_, err = features.Representative(sp, "homotopy", s(0, 1))
	require.ErrorIs(t, err, persistence.ErrUnknownModule)

	_, err = features.Representative(nil, persistence.Complex, s(0, 1))
	require.ErrorIs(t, err, features.ErrNilSixPack)
	_, err = features.PersistencePairs(nil, persistence.Complex, 0, features.ByPersistence())
	require.ErrorIs(t, err, features.ErrNilSixPack)
}
