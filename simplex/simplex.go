// SPDX-License-Identifier: MIT

package simplex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Sentinel errors for simplex construction and parsing.
var (
	// ErrEmpty indicates that a simplex was requested with no vertices.
	ErrEmpty = errors.New("simplex: no vertices")

	// ErrNegativeVertex indicates a negative vertex id.
	ErrNegativeVertex = errors.New("simplex: negative vertex id")

	// ErrVertexOutOfRange indicates a vertex id larger than math.MaxUint32.
	ErrVertexOutOfRange = errors.New("simplex: vertex id out of range")

	// ErrDuplicateVertex indicates a repeated vertex id.
	ErrDuplicateVertex = errors.New("simplex: duplicate vertex id")

	// ErrSyntax indicates that Parse could not read its input.
	ErrSyntax = errors.New("simplex: invalid syntax")
)

// wordSize is the number of key bytes used per vertex.
const wordSize = 4

// Simplex is an immutable, canonical vertex set. The zero value is the
// empty simplex and is never produced by New.
type Simplex struct {
	key string // big-endian packed ascending vertex ids
}

// New returns the canonical simplex spanned by the given vertices.
// The input may be in any order; it is not modified.
func New(vertices ...int) (Simplex, error) {
	if len(vertices) == 0 {
		return Simplex{}, ErrEmpty
	}
	sorted := slices.Clone(vertices)
	slices.Sort(sorted)

	buf := make([]byte, len(sorted)*wordSize)
	for i, v := range sorted {
		if v < 0 {
			return Simplex{}, fmt.Errorf("%w: %d", ErrNegativeVertex, v)
		}
		if uint64(v) > math.MaxUint32 {
			return Simplex{}, fmt.Errorf("%w: %d", ErrVertexOutOfRange, v)
		}
		if i > 0 && sorted[i-1] == v {
			return Simplex{}, fmt.Errorf("%w: %d", ErrDuplicateVertex, v)
		}
		binary.BigEndian.PutUint32(buf[i*wordSize:], uint32(v))
	}

	return Simplex{key: string(buf)}, nil
}

// MustNew is New for literals known to be valid. It panics on error.
func MustNew(vertices ...int) Simplex {
	s, err := New(vertices...)
	if err != nil {
		panic(err)
	}

	return s
}

// fromSorted packs an already canonical vertex slice without validation.
func fromSorted(sorted []int) Simplex {
	buf := make([]byte, len(sorted)*wordSize)
	for i, v := range sorted {
		binary.BigEndian.PutUint32(buf[i*wordSize:], uint32(v))
	}

	return Simplex{key: string(buf)}
}

// Len returns the number of vertices.
func (s Simplex) Len() int { return len(s.key) / wordSize }

// Dim returns the dimension, Len()-1. The zero Simplex has dimension -1.
func (s Simplex) Dim() int { return s.Len() - 1 }

// IsZero reports whether s is the zero value.
func (s Simplex) IsZero() bool { return s.key == "" }

// Vertex returns the i-th smallest vertex.
func (s Simplex) Vertex(i int) int {
	k := s.key[i*wordSize:]
	return int(uint32(k[0])<<24 | uint32(k[1])<<16 | uint32(k[2])<<8 | uint32(k[3]))
}

// Vertices returns a fresh ascending slice of the vertex ids.
func (s Simplex) Vertices() []int {
	out := make([]int, s.Len())
	for i := range out {
		out[i] = s.Vertex(i)
	}

	return out
}

// Contains reports whether v is a vertex of s.
func (s Simplex) Contains(v int) bool {
	for i := 0; i < s.Len(); i++ {
		if s.Vertex(i) == v {
			return true
		}
	}

	return false
}

// SubsetOf reports whether every vertex of s is a member of vertices.
func (s Simplex) SubsetOf(vertices map[int]struct{}) bool {
	for i := 0; i < s.Len(); i++ {
		if _, ok := vertices[s.Vertex(i)]; !ok {
			return false
		}
	}

	return true
}

// IsFaceOf reports whether s is a (not necessarily proper) face of t.
func (s Simplex) IsFaceOf(t Simplex) bool {
	j := 0
	for i := 0; i < s.Len(); i++ {
		v := s.Vertex(i)
		for j < t.Len() && t.Vertex(j) < v {
			j++
		}
		if j == t.Len() || t.Vertex(j) != v {
			return false
		}
		j++
	}

	return true
}

// Faces returns the codimension-1 faces of s in ascending Compare order.
// Vertices (and the zero Simplex) have no faces.
func (s Simplex) Faces() []Simplex {
	n := s.Len()
	if n <= 1 {
		return nil
	}
	verts := s.Vertices()
	faces := make([]Simplex, 0, n)
	// Dropping the last vertex first yields lexicographically smallest faces first.
	for drop := n - 1; drop >= 0; drop-- {
		face := make([]int, 0, n-1)
		face = append(face, verts[:drop]...)
		face = append(face, verts[drop+1:]...)
		faces = append(faces, fromSorted(face))
	}

	return faces
}

// String renders s as "(v0,v1,...)".
func (s Simplex) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < s.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s.Vertex(i)))
	}
	b.WriteByte(')')

	return b.String()
}

// Parse reads the String form. Parentheses, brackets and surrounding spaces
// are optional, so "0,1,2", "(0, 1, 2)" and "[0 1 2]" are all accepted.
func Parse(text string) (Simplex, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.Trim(trimmed, "()[]")
	fields := strings.FieldsFunc(trimmed, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return Simplex{}, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	verts := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Simplex{}, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
		verts[i] = v
	}

	return New(verts...)
}

// Compare orders simplices lexicographically by vertex tuple.
// It returns -1, 0 or +1.
func Compare(a, b Simplex) int {
	return strings.Compare(a.key, b.key)
}

// CompareByDim orders by vertex count first, then lexicographically.
func CompareByDim(a, b Simplex) int {
	if a.Len() != b.Len() {
		if a.Len() < b.Len() {
			return -1
		}
		return 1
	}

	return Compare(a, b)
}

// Sort sorts simplices by dimension and then lexicographically, in place.
func Sort(ss []Simplex) {
	slices.SortFunc(ss, CompareByDim)
}

// Closure returns the down-closure of the given simplices (every face of
// every simplex, the simplices included), sorted with Sort.
func Closure(generators []Simplex) []Simplex {
	seen := make(map[Simplex]struct{}, len(generators))
	stack := make([]Simplex, 0, len(generators))
	for _, g := range generators {
		if _, ok := seen[g]; ok || g.IsZero() {
			continue
		}
		seen[g] = struct{}{}
		stack = append(stack, g)
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, f := range top.Faces() {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			stack = append(stack, f)
		}
	}
	out := make([]Simplex, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	Sort(out)

	return out
}
