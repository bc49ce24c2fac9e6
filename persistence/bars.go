// SPDX-License-Identifier: MIT

package persistence

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/sixpack/filtration"
	"github.com/katalvlaran/sixpack/gf2"
	"github.com/katalvlaran/sixpack/simplex"
	"github.com/katalvlaran/sixpack/simplicial"
)

// Bar is one interval of a persistence diagram. Death is +Inf for
// essential classes.
type Bar struct {
	Dim   int
	Birth float64
	Death float64
}

// IsFinite reports whether the bar has a finite death.
func (b Bar) IsFinite() bool { return !math.IsInf(b.Death, 1) }

// Persistence returns Death - Birth (+Inf for essential bars).
func (b Bar) Persistence() float64 { return b.Death - b.Birth }

func compareBars(a, b Bar) int {
	if c := cmp.Compare(a.Dim, b.Dim); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Birth, b.Birth); c != 0 {
		return c
	}
	return cmp.Compare(a.Death, b.Death)
}

// ModuleDim selects the bars of one module in one dimension.
type ModuleDim struct {
	Module ModuleName
	Dim    int
}

// BarOption filters a bar query.
type BarOption func(*barQuery)

type barQuery struct {
	dim        int
	anyDim     bool
	onlyFinite bool
}

// Dim keeps only bars of dimension d.
func Dim(d int) BarOption {
	return func(q *barQuery) { q.dim, q.anyDim = d, false }
}

// OnlyFinite drops essential bars.
func OnlyFinite() BarOption {
	return func(q *barQuery) { q.onlyFinite = true }
}

func gatherBarQuery(opts []BarOption) barQuery {
	q := barQuery{anyDim: true}
	for _, opt := range opts {
		opt(&q)
	}

	return q
}

// Generation returns the generation of the complex this six-pack was
// computed from.
func (sp *SixPack) Generation() uint64 { return sp.generation }

// Complex returns the complex the six-pack was computed from. It may have
// been mutated since; compare Generation to detect that.
func (sp *SixPack) Complex() *simplicial.Complex { return sp.complex }

// Order returns the filtration orders used by the reductions.
func (sp *SixPack) Order() *filtration.Order { return sp.order }

// WeightAt returns the weight of id at computation time.
func (sp *SixPack) WeightAt(id int) float64 { return sp.weights[id] }

// InSubComplexAt reports whether id was in the sub-complex at computation time.
func (sp *SixPack) InSubComplexAt(id int) bool { return sp.sub[id] }

// Reduction returns a copy of the reduction behind module name.
// V is only present for Complex and SubComplex.
func (sp *SixPack) Reduction(name ModuleName) (*gf2.Result, error) {
	res, ok := sp.reductions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	out := &gf2.Result{
		Reduced: res.Reduced.Clone(),
		Pivots:  make(map[int]int, len(res.Pivots)),
		Stats:   res.Stats,
	}
	for row, col := range res.Pivots {
		out.Pivots[row] = col
	}
	if res.Reduction != nil {
		out.Reduction = res.Reduction.Clone()
	}

	return out, nil
}

// ReducedColumn returns a copy of column id of the reduced matrix behind
// module name. ok is false when the reduction has no such column.
func (sp *SixPack) ReducedColumn(name ModuleName, id int) (col gf2.Column, ok bool, err error) {
	res, known := sp.reductions[name]
	if !known {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	col, ok = res.Reduced[id]

	return slices.Clone(col), ok, nil
}

// Module returns the birth/death bookkeeping of module name.
func (sp *SixPack) Module(name ModuleName) (Module, error) {
	m, ok := sp.modules[name]
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	out := Module{
		Name:      name,
		Birth:     sp.simplices(m.birth),
		Death:     sp.simplices(m.death),
		Essential: sp.simplices(m.essential),
		Pairs:     make([]Pair, len(m.pairs)),
	}
	for i, p := range m.pairs {
		out.Pairs[i] = Pair{Birth: sp.complex.At(p.birth), Death: sp.complex.At(p.death)}
	}

	return out, nil
}

// Bars returns the non-trivial bars of module name sorted by
// (dimension, birth, death). A pair (b, d) yields [w(b), w(d)), an essential
// class b yields [w(b), +Inf). Bars whose ends are within the complex's
// tolerance are dropped.
func (sp *SixPack) Bars(name ModuleName, opts ...BarOption) ([]Bar, error) {
	m, ok := sp.modules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	q := gatherBarQuery(opts)
	tol := sp.complex.Tolerance()

	bars := make([]Bar, 0, len(m.pairs)+len(m.essential))
	add := func(birth int, death float64) {
		b := Bar{Dim: sp.barDim(name, birth), Birth: sp.weights[birth], Death: death}
		if !q.anyDim && b.Dim != q.dim {
			return
		}
		if q.onlyFinite && !b.IsFinite() {
			return
		}
		if tol.IsTrivialBar(b.Birth, b.Death) {
			return
		}
		bars = append(bars, b)
	}
	for _, p := range m.pairs {
		add(p.birth, sp.weights[p.death])
	}
	for _, id := range m.essential {
		add(id, math.Inf(1))
	}
	slices.SortFunc(bars, compareBars)

	return bars, nil
}

// BarsByDim groups the bars of module name by dimension.
func (sp *SixPack) BarsByDim(name ModuleName, opts ...BarOption) (map[int][]Bar, error) {
	bars, err := sp.Bars(name, opts...)
	if err != nil {
		return nil, err
	}
	out := make(map[int][]Bar)
	for _, b := range bars {
		out[b.Dim] = append(out[b.Dim], b)
	}

	return out, nil
}

// All returns the bars of all six modules.
func (sp *SixPack) All(opts ...BarOption) map[ModuleName][]Bar {
	out := make(map[ModuleName][]Bar, len(sp.modules))
	for _, name := range Modules() {
		bars, _ := sp.Bars(name, opts...) // name is always known
		out[name] = bars
	}

	return out
}

// FiniteOneNorm returns the sum of the lengths of the finite bars of module
// name in dimension dim.
func (sp *SixPack) FiniteOneNorm(name ModuleName, dim int) (float64, error) {
	bars, err := sp.Bars(name, Dim(dim), OnlyFinite())
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Persistence()
	}

	return sum, nil
}

// Diagrams returns one bar list per selector, in selector order.
func (sp *SixPack) Diagrams(selectors []ModuleDim, opts ...BarOption) ([][]Bar, error) {
	out := make([][]Bar, 0, len(selectors))
	for _, sel := range selectors {
		bars, err := sp.Bars(sel.Module, append(slices.Clone(opts), Dim(sel.Dim))...)
		if err != nil {
			return nil, err
		}
		out = append(out, bars)
	}

	return out, nil
}

// barDim is the homological dimension of a class born at birth. Kernel
// classes are born by the chain that first bounds them, one dimension up.
func (sp *SixPack) barDim(name ModuleName, birth int) int {
	d := sp.complex.At(birth).Dim()
	if name == Kernel {
		d--
	}

	return d
}

func (sp *SixPack) simplices(ids []int) []simplex.Simplex {
	out := make([]simplex.Simplex, len(ids))
	for i, id := range ids {
		out[i] = sp.complex.At(id)
	}

	return out
}
