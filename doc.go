// SPDX-License-Identifier: MIT

// Package sixpack computes the six-pack of persistent homology over GF(2)
// for a filtered simplicial complex K and a sub-complex L ⊆ K:
//
//	complex      H(K)
//	sub_complex  H(L)
//	image        im  H(L)→H(K)
//	kernel       ker H(L)→H(K)
//	cokernel     cok H(L)→H(K)
//	relative     H(K, L)
//
// The root package is a thin facade that keeps a simplicial.Complex together
// with its last computed persistence.SixPack and recomputes lazily after a
// mutation. The building blocks live in subpackages:
//
//	simplex/      canonical simplices as comparable values
//	floatcmp/     the single tolerance policy for filtration values
//	simplicial/   the complex model: arena, weights, sub-complex, repair pass
//	filtration/   memoized (weight, dimension, vertex tuple) orders
//	gf2/          sparse GF(2) columns and the persistence reduction
//	persistence/  the six reductions, birth/death extraction and bars
//	features/     ranking of pairs and representative cycles
//	cmd/sixpack   command line front end reading YAML or JSON
//
// Quick example:
//
//	c, _ := sixpack.FromWeightedSimplices(map[simplex.Simplex]float64{
//		simplex.MustNew(0, 1, 2): 1,
//	})
//	_ = c.SetSubComplex([]simplex.Simplex{simplex.MustNew(0, 1), simplex.MustNew(1, 2), simplex.MustNew(0, 2)})
//	bars, _ := c.Bars(sixpack.ModuleKernel)
//
// A Complex serializes its own access: queries may be issued from several
// goroutines, and mutations wait for an in-flight computation to finish.
package sixpack
