// SPDX-License-Identifier: MIT

// Package simplicial implements the filtered simplicial complex model that
// persistence is computed on: the simplex set, its boundary and coboundary
// relations, a filtration weight per simplex and a distinguished down-closed
// sub-complex.
//
// What:
//
//   - Complex stores simplices in an integer arena. Ids are assigned in
//     (dimension, lexicographic) order, so faces always have smaller ids than
//     their cofaces and every listing is deterministic.
//   - FromSimplexList closes a list of (maximal) simplices under taking faces.
//     FromWeightedSimplices does the same and then assigns the given weights.
//   - SetWeights, SetSubComplex and SetTotalSubComplex mutate the filtration
//     and the sub-complex; the simplex set never changes after construction.
//   - Restrict builds a new Complex on a subset of the simplices, keeping only
//     faces that are inside the subset.
//
// Invariants:
//
//   - Weights are monotone along the face relation: w(face) <= w(coface) up
//     to the configured tolerance. SetWeights enforces this with the explicit
//     repair pass RepairMonotonicity, which clamps each weight to the minimum
//     of its cofaces' weights (and snaps weights that are merely close to that
//     minimum onto it).
//   - The sub-complex is down-closed; SetSubComplex takes the closure of its
//     generators.
//   - Generation increases on every successful mutation; callers caching
//     derived results compare generations to detect staleness.
//
// Errors:
//
//   - ErrEmptyComplex    no simplices were given.
//   - ErrUnknownSimplex  a referenced simplex is not in the complex; the
//     complex is left unmodified.
//   - ErrInvalidWeight   a NaN weight was given.
//   - ErrNotMonotone     CheckMonotonicity found a face heavier than a coface.
//   - ErrWeightBelowDefault (wrapped by Warning) a soft warning, never fatal.
//
// Complexity:
//
//   - Construction: O(N·d) for N simplices of dimension at most d (after the
//     closure, which is O(N·d) map operations).
//   - SetWeights / RepairMonotonicity: O(N·d).
//   - SetSubComplex: O(|closure|·d).
package simplicial
