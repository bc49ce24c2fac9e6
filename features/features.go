// SPDX-License-Identifier: MIT

package features

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/sixpack/persistence"
	"github.com/katalvlaran/sixpack/simplex"
	"github.com/katalvlaran/sixpack/simplicial"
)

// Sentinel errors for the features package.
var (
	// ErrNotImplemented indicates a module without a representative extractor.
	ErrNotImplemented = errors.New("features: representative not implemented for module")

	// ErrNotDeath indicates a simplex that kills no class of the module.
	ErrNotDeath = errors.New("features: simplex is not a death simplex of the module")

	// ErrNilSixPack indicates a nil six-pack argument.
	ErrNilSixPack = errors.New("features: six-pack is nil")
)

// Feature is a finite persistence pair together with its filtration values.
type Feature struct {
	Pair  persistence.Pair
	Birth float64
	Death float64
}

// Persistence returns Death - Birth.
func (f Feature) Persistence() float64 { return f.Death - f.Birth }

// SortBy ranks features. The zero value is ByPersistence.
type SortBy struct {
	proximity    bool
	birth, death float64
}

// ByPersistence ranks longer bars first.
func ByPersistence() SortBy { return SortBy{} }

// ByProximity ranks bars by increasing Euclidean distance of (birth, death)
// to the given bar of interest.
func ByProximity(birth, death float64) SortBy {
	return SortBy{proximity: true, birth: birth, death: death}
}

func (s SortBy) key(f Feature) float64 {
	if s.proximity {
		return math.Hypot(f.Birth-s.birth, f.Death-s.death)
	}

	return -f.Persistence()
}

// PersistencePairs returns the finite non-trivial pairs of module whose
// death simplex has dimension dim+1, ranked by sortBy. Ties keep the
// module's pair order.
func PersistencePairs(sp *persistence.SixPack, module persistence.ModuleName, dim int, sortBy SortBy) ([]Feature, error) {
	if sp == nil {
		return nil, ErrNilSixPack
	}
	m, err := sp.Module(module)
	if err != nil {
		return nil, err
	}
	c := sp.Complex()
	tol := c.Tolerance()

	out := make([]Feature, 0, len(m.Pairs))
	for _, p := range m.Pairs {
		if p.Death.Len() != dim+2 {
			continue
		}
		f := Feature{Pair: p, Birth: weightOf(sp, c, p.Birth), Death: weightOf(sp, c, p.Death)}
		if tol.IsTrivialBar(f.Birth, f.Death) {
			continue
		}
		out = append(out, f)
	}
	slices.SortStableFunc(out, func(a, b Feature) int { return cmp.Compare(sortBy.key(a), sortBy.key(b)) })

	return out, nil
}

// Representative returns a cycle, as a sorted list of simplices, that
// represents the class of module killed by death.
func Representative(sp *persistence.SixPack, module persistence.ModuleName, death simplex.Simplex) ([]simplex.Simplex, error) {
	if sp == nil {
		return nil, ErrNilSixPack
	}
	if !module.Valid() {
		return nil, fmt.Errorf("%w: %q", persistence.ErrUnknownModule, module)
	}
	if module == persistence.Cokernel || module == persistence.Relative {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, module)
	}

	c := sp.Complex()
	id, ok := c.ID(death)
	if !ok {
		return nil, fmt.Errorf("%w: %v", simplicial.ErrUnknownSimplex, death)
	}
	m, err := sp.Module(module)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(m.Death, death) {
		return nil, fmt.Errorf("%w: %v in %s", ErrNotDeath, death, module)
	}

	col, _, err := sp.ReducedColumn(module, id)
	if err != nil {
		return nil, err
	}
	if module != persistence.Kernel {
		return toSimplices(c, col), nil
	}

	// Kernel columns are chains; the class is the boundary of their part in L.
	chain := make([]simplex.Simplex, 0, len(col))
	for _, cid := range col {
		if sp.InSubComplexAt(cid) {
			chain = append(chain, c.At(cid))
		}
	}
	cycle, err := c.ChainBoundary(chain)
	if err != nil {
		return nil, err
	}
	simplex.Sort(cycle)

	return cycle, nil
}

func weightOf(sp *persistence.SixPack, c *simplicial.Complex, s simplex.Simplex) float64 {
	id, _ := c.ID(s)
	return sp.WeightAt(id)
}

func toSimplices(c *simplicial.Complex, ids []int) []simplex.Simplex {
	out := make([]simplex.Simplex, len(ids))
	for i, id := range ids {
		out[i] = c.At(id)
	}
	simplex.Sort(out)

	return out
}
