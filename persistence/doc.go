// SPDX-License-Identifier: MIT

// Package persistence computes the six-pack of persistence modules for a
// filtered simplicial complex K with a down-closed sub-complex L:
//
//	complex      H(K)          persistence of the whole complex
//	sub_complex  H(L)          persistence of the sub-complex alone
//	image        im  H(L)→H(K)
//	kernel       ker H(L)→H(K)
//	cokernel     cok H(L)→H(K)
//	relative     H(K, L)
//
// How:
//
// Compute runs gf2.Reduce six times, feeding later reductions with the
// results of earlier ones:
//
//  1. complex:     boundary of K, Primary order, with V.
//  2. sub_complex: boundary restricted to L, Primary order, with V.
//  3. image:       the reduced complex matrix, columns Primary, rows SubComplexFirst.
//  4. kernel:      columns of V(complex) whose reduced column is zero (cycles),
//     columns Primary, rows SubComplexFirst.
//  5. cokernel:    per simplex, V(sub_complex) if it is a cycle in L, else the
//     reduced complex column; Primary.
//  6. relative:    reduced complex columns outside L with rows outside L; Primary.
//
// Reusing the reduced complex matrix instead of the raw boundary is valid
// because reduction never changes the column of a cycle, and it avoids
// redoing the work of step 1 four more times.
//
// Birth, death, essential classes and pairs are then read off each
// reduction with module-specific rules (see extract.go). A pair yields the
// bar (w(birth), w(death)); an essential class yields (w(birth), +Inf).
// Bars have dimension len(birth)-1, except kernel bars which are indexed one
// lower.
//
// Concurrency:
//
// By default reductions run sequentially. WithParallel runs them on
// goroutines along the dependency graph (complex ∥ sub_complex, then
// image ∥ kernel ∥ cokernel ∥ relative). Each reduction copies its input and
// writes only its own result; results are assembled after each stage.
//
// Errors:
//
//   - ErrNilComplex     Compute was given a nil complex.
//   - ErrUnknownModule  a bar query named a module outside the six-pack.
//   - context errors    ctx was cancelled between reductions.
//   - gf2.ErrMalformedMatrix never expected; it would indicate a bug in the
//     matrix construction above and is returned as is.
package persistence
