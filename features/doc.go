// SPDX-License-Identifier: MIT

// Package features inspects individual persistence pairs of a computed
// six-pack.
//
// What:
//
//   - PersistencePairs lists the finite, non-trivial pairs of one module in
//     one dimension, ranked either by decreasing persistence or by
//     increasing distance to a bar of interest in the (birth, death) plane.
//   - Representative returns a cycle representing the class killed by a
//     death simplex: the reduced column of that simplex for complex,
//     sub_complex and image, and the boundary of the sub-complex part of the
//     kernel column for kernel.
//
// Representatives for cokernel and relative classes are not available and
// return ErrNotImplemented.
//
// Everything is read from the six-pack snapshot, so results describe the
// complex as it was when persistence.Compute ran.
package features
