// SPDX-License-Identifier: MIT

package persistence

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/sixpack/gf2"
)

// idPair is a persistence pair in id space.
type idPair struct {
	birth, death int
}

// moduleIDs is the id-space form of Module.
type moduleIDs struct {
	birth, death, essential []int
	pairs                   []idPair
}

// extractAll reads birth, death, essential and pairs of all six modules off
// the reductions held by sp.
func extractAll(sp *SixPack) map[ModuleName]*moduleIDs {
	rc := sp.reductions[Complex]
	rs := sp.reductions[SubComplex]
	ri := sp.reductions[Image]
	rk := sp.reductions[Kernel]
	rok := sp.reductions[Cokernel]
	rr := sp.reductions[Relative]
	inL := func(id int) bool { return sp.sub[id] }

	out := map[ModuleName]*moduleIDs{
		Complex:    plain(rc),
		SubComplex: plain(rs),
		Relative:   plain(rr),
	}

	// image: born with the cycles of L, killed by pivots of R(image) in L.
	img := &moduleIDs{birth: rs.Reduced.ZeroColumns()}
	for row, col := range ri.Pivots {
		if inL(row) {
			img.pairs = append(img.pairs, idPair{birth: row, death: col})
		}
	}
	out[Image] = img

	// kernel: born where a chain outside L first bounds a cycle of L; killed
	// by a cycle of K that is a boundary in L.
	ker := &moduleIDs{}
	for row, col := range ri.Pivots {
		if inL(row) && !inL(col) {
			ker.birth = append(ker.birth, col)
		}
	}
	for row, col := range rk.Pivots {
		if inL(col) && !rs.Reduced[col].IsZero() && rc.Reduced[col].IsZero() {
			ker.pairs = append(ker.pairs, idPair{birth: row, death: col})
		}
	}
	out[Kernel] = ker

	// cokernel: born by positive simplices of K not already born in L; killed
	// by negative simplices whose image low lies outside L.
	lowImage := ri.Lows()
	cok := &moduleIDs{}
	for id, col := range ri.Reduced {
		if !col.IsZero() {
			continue
		}
		if !inL(id) || !rs.Reduced[id].IsZero() {
			cok.birth = append(cok.birth, id)
		}
	}
	for row, col := range rok.Pivots {
		if low, ok := lowImage[col]; ok && !inL(low) {
			cok.pairs = append(cok.pairs, idPair{birth: row, death: col})
		}
	}
	out[Cokernel] = cok

	for _, name := range []ModuleName{Image, Kernel, Cokernel} {
		m := out[name]
		m.death = make([]int, 0, len(m.pairs))
		for _, p := range m.pairs {
			m.death = append(m.death, p.death)
		}
	}

	primary := sp.order.Primary()
	rank := func(id int) int {
		pos, _ := primary.Rank(id)
		return pos
	}
	for _, m := range out {
		m.essential = essential(m.birth, m.pairs)
		primary.Sort(m.birth)
		primary.Sort(m.death)
		primary.Sort(m.essential)
		slices.SortFunc(m.pairs, func(a, b idPair) int {
			if c := cmp.Compare(rank(a.death), rank(b.death)); c != 0 {
				return c
			}
			return cmp.Compare(rank(a.birth), rank(b.birth))
		})
	}

	return out
}

// plain extracts an ordinary persistence module: zero columns give birth,
// nonzero columns kill, and every pivot is a pair.
func plain(res *gf2.Result) *moduleIDs {
	m := &moduleIDs{pairs: make([]idPair, 0, len(res.Pivots))}
	for id, col := range res.Reduced {
		if col.IsZero() {
			m.birth = append(m.birth, id)
		} else {
			m.death = append(m.death, id)
		}
	}
	for row, col := range res.Pivots {
		m.pairs = append(m.pairs, idPair{birth: row, death: col})
	}

	return m
}

func essential(birth []int, pairs []idPair) []int {
	killed := make(map[int]struct{}, len(pairs))
	for _, p := range pairs {
		killed[p.birth] = struct{}{}
	}
	out := make([]int, 0, len(birth))
	for _, id := range birth {
		if _, ok := killed[id]; !ok {
			out = append(out, id)
		}
	}

	return out
}
