// SPDX-License-Identifier: MIT

package gf2

import (
	"fmt"
	"maps"
	"slices"
)

// Column is a sparse GF(2) vector: strictly ascending ids of nonzero rows.
// The nil Column is the zero vector.
type Column []int

// Matrix is a sparse GF(2) matrix keyed by column id.
type Matrix map[int]Column

// NewColumn builds a canonical Column from ids in any order. Over GF(2)
// repeated ids cancel in pairs.
func NewColumn(ids ...int) Column {
	if len(ids) == 0 {
		return nil
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	out := sorted[:0]
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if (j-i)%2 == 1 {
			out = append(out, sorted[i])
		}
		i = j
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// IsZero reports whether c is the zero vector.
func (c Column) IsZero() bool { return len(c) == 0 }

// Contains reports whether row is a nonzero entry of c.
func (c Column) Contains(row int) bool {
	_, found := slices.BinarySearch(c, row)
	return found
}

// Add returns a + b over GF(2), the symmetric difference of the row sets.
// Neither argument is modified.
func Add(a, b Column) Column {
	return Column(mergeXor(a, b))
}

// mergeXor is the symmetric difference of two strictly ascending slices.
func mergeXor(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	if len(out) == 0 {
		return nil
	}

	return out
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for k, col := range m {
		out[k] = slices.Clone(col)
	}

	return out
}

// Columns returns the column ids in ascending order.
func (m Matrix) Columns() []int {
	return slices.Sorted(maps.Keys(m))
}

// Equal reports whether m and o have the same columns with the same entries.
// A nil and an empty Column are equal.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for k, col := range m {
		other, ok := o[k]
		if !ok || !slices.Equal(col, other) {
			return false
		}
	}

	return true
}

// Multiply returns m · v: column c of the product is the sum of the columns
// of m indexed by v[c]. Every entry of v must be a column of m.
func (m Matrix) Multiply(v Matrix) (Matrix, error) {
	out := make(Matrix, len(v))
	for c, idx := range v {
		var acc Column
		for _, k := range idx {
			col, ok := m[k]
			if !ok {
				return nil, fmt.Errorf("%w: product references missing column %d", ErrMalformedMatrix, k)
			}
			acc = Add(acc, col)
		}
		out[c] = acc
	}

	return out, nil
}

// Restrict returns the sub-matrix of columns accepted by keepColumn, each
// with only the rows accepted by keepRow. A nil predicate keeps everything.
func (m Matrix) Restrict(keepColumn, keepRow func(id int) bool) Matrix {
	out := make(Matrix, len(m))
	for k, col := range m {
		if keepColumn != nil && !keepColumn(k) {
			continue
		}
		var kept Column
		for _, r := range col {
			if keepRow == nil || keepRow(r) {
				kept = append(kept, r)
			}
		}
		out[k] = kept
	}

	return out
}

// ZeroColumns returns the ids of zero columns in ascending order.
func (m Matrix) ZeroColumns() []int {
	var out []int
	for k, col := range m {
		if col.IsZero() {
			out = append(out, k)
		}
	}
	slices.Sort(out)

	return out
}
