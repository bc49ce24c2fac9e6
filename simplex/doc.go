// SPDX-License-Identifier: MIT

// Package simplex defines Simplex, the canonical identity of a simplex in a
// simplicial complex.
//
// What:
//
//   - A Simplex is a finite set of non-negative vertex ids, stored canonically
//     as an ascending tuple. Its dimension is one less than its vertex count.
//   - Simplex is a comparable value type: it can be used directly as a map key
//     and compared with ==, which is what every other package relies on.
//   - Compare orders simplices lexicographically by vertex tuple, so that
//     (0,1) < (0,1,2) < (0,2) < (1,2).
//
// Why:
//
//   - Boundary matrices, pivot maps and persistence pairs are all keyed by
//     simplex identity; one canonical representation keeps them consistent.
//
// Representation:
//
//	The vertex tuple is packed into a string of big-endian uint32 words.
//	Byte-wise string comparison of that key is exactly the lexicographic
//	order on tuples (a proper prefix sorts first), so Compare is a single
//	strings.Compare call.
//
// Errors:
//
//   - ErrEmpty            no vertices given.
//   - ErrNegativeVertex   a vertex id is negative.
//   - ErrVertexOutOfRange a vertex id does not fit in 32 bits.
//   - ErrDuplicateVertex  the same vertex appears twice.
//   - ErrSyntax           Parse could not read the textual form.
package simplex
