// SPDX-License-Identifier: MIT

package gf2

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Reduce runs the standard persistence reduction on m.
//
// Columns are processed in ascending order of columns; the low entry of a
// column is its maximal row under the row order (WithRowOrder, defaulting to
// columns). While the low entry of column s is the pivot of an earlier
// column t, column t is added to s. See the package documentation for the
// guarantees.
//
// m is never modified. Every column id and every row id must be covered by
// the corresponding order, otherwise ErrMalformedMatrix is returned.
func Reduce(m Matrix, columns Ranker, opts ...Option) (*Result, error) {
	// 1) Gather options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if columns == nil {
		return nil, fmt.Errorf("%w: columns", ErrNilRanker)
	}
	rows := cfg.Rows
	if rows == nil {
		rows = columns
	}

	// 2) Order the columns and copy them into rank space.
	r := &reduction{
		rows:   rows,
		order:  make([]int, 0, len(m)),
		work:   make(map[int][]int, len(m)),
		lowInv: make(map[int]int),
	}
	colRank := make(map[int]int, len(m))
	for c, col := range m {
		pos, ok := columns.Rank(c)
		if !ok {
			return nil, fmt.Errorf("%w: column %d is not ordered", ErrMalformedMatrix, c)
		}
		colRank[c] = pos
		ranked, err := r.toRanks(c, col)
		if err != nil {
			return nil, err
		}
		r.order = append(r.order, c)
		r.work[c] = ranked
	}
	slices.SortFunc(r.order, func(a, b int) int { return cmp.Compare(colRank[a], colRank[b]) })

	if cfg.Reduction {
		r.v = make(Matrix, len(m))
		for c := range m {
			r.v[c] = Column{c}
		}
	}

	// 3) Reduce left to right.
	r.run()

	// 4) Translate back to id space.
	res := &Result{
		Reduced:   make(Matrix, len(m)),
		Pivots:    make(map[int]int, len(r.lowInv)),
		Reduction: r.v,
		Stats: Stats{
			Columns:   len(m),
			Pivots:    len(r.lowInv),
			Additions: r.additions,
		},
	}
	for c, ranked := range r.work {
		res.Reduced[c] = r.toIDs(ranked)
	}
	for low, c := range r.lowInv {
		res.Pivots[rows.ID(low)] = c
	}

	cfg.Logger.Debug("matrix reduced",
		zap.String("label", cfg.Label),
		zap.Int("columns", res.Stats.Columns),
		zap.Int("pivots", res.Stats.Pivots),
		zap.Int("additions", res.Stats.Additions))

	return res, nil
}

// reduction holds the mutable state of one Reduce call.
type reduction struct {
	rows      Ranker
	order     []int         // column ids in processing order
	work      map[int][]int // column id -> ascending row ranks
	lowInv    map[int]int   // low row rank -> owning column id
	v         Matrix        // reduction matrix, nil when not tracked
	additions int
}

// toRanks converts a column to ascending row ranks, cancelling duplicates.
func (r *reduction) toRanks(c int, col Column) ([]int, error) {
	if len(col) == 0 {
		return nil, nil
	}
	ranked := make([]int, 0, len(col))
	for _, row := range col {
		pos, ok := r.rows.Rank(row)
		if !ok {
			return nil, fmt.Errorf("%w: row %d of column %d is not ordered", ErrMalformedMatrix, row, c)
		}
		ranked = append(ranked, pos)
	}

	return []int(NewColumn(ranked...)), nil
}

func (r *reduction) toIDs(ranked []int) Column {
	if len(ranked) == 0 {
		return nil
	}
	ids := make([]int, len(ranked))
	for i, pos := range ranked {
		ids[i] = r.rows.ID(pos)
	}
	slices.Sort(ids)

	return ids
}

func (r *reduction) run() {
	for _, s := range r.order {
		col := r.work[s]
		for len(col) > 0 {
			t, owned := r.lowInv[col[len(col)-1]]
			if !owned {
				break
			}
			col = mergeXor(col, r.work[t])
			if r.v != nil {
				r.v[s] = Add(r.v[s], r.v[t])
			}
			r.additions++
		}
		r.work[s] = col
		if len(col) > 0 {
			r.lowInv[col[len(col)-1]] = s
		}
	}
}
