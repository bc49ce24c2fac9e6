// SPDX-License-Identifier: MIT

// Package gf2 provides sparse matrices over the two-element field and the
// standard persistence reduction algorithm.
//
// What:
//
//   - Column is a sparse GF(2) vector: the ascending ids of its nonzero rows.
//   - Matrix maps a column id to its Column. Ids are opaque integers; in this
//     module they are simplex ids of a simplicial.Complex arena.
//   - Add is column addition, i.e. the symmetric difference of row sets.
//   - Reduce runs left-to-right column reduction under injected column and
//     row orders, optionally tracking the change-of-basis matrix V with
//     Reduced = Input · V.
//
// Why:
//
//	Every persistence module in this repository is read off the pivots of
//	some reduced matrix. The reducer is agnostic to what a matrix means; it
//	may be a boundary matrix, a restriction of one, or the reduction matrix
//	of an earlier run.
//
// Algorithm (Reduce):
//
//  1. Copy the input; the caller's matrix is never modified.
//  2. With WithReductionMatrix, start from V[c] = {c}.
//  3. Visit columns in ascending column order. While the column is nonzero
//     and its low entry (maximal row under the row order) is already the
//     pivot of an earlier column t, add column t to it (and V[t] to V[s]).
//  4. A column left nonzero records Pivots[low] = column.
//
// Internally each working column is kept as ascending row ranks, so the low
// entry is the last element and column addition is a linear merge.
//
// Guarantees:
//
//   - Pivots is injective (row -> column).
//   - Reduced = Input · V over GF(2) when V is requested.
//   - Reducing an already reduced matrix under the same orders returns it
//     unchanged with identical pivots.
//
// Errors:
//
//   - ErrMalformedMatrix a column or row id is not covered by the orders.
//     This means an upstream matrix was built wrongly; it is not recoverable.
//   - ErrNilRanker       a nil column or row order was passed.
//
// Complexity:
//
//   - Time: O(n·m) column additions in the worst case for n columns of
//     length m (each addition O(m)); typically far less.
//   - Space: O(nnz) for the working copy, plus O(nnz(V)).
package gf2
