package colgen

import (
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Prune bounds the pool to the configured top-K columns per tour, ranked by
// covered tour count, then quality cost, then key. A column that is the
// unique cover of some tour always survives, so pruning can never create a
// zero-support tour. It returns the number of columns dropped.
func (g *Generator) Prune(pool *Pool) int {
	before := pool.Len()
	if before <= g.cfg.MaxPoolSize {
		// Per-tour capping alone is enough below the global cap when K is
		// already generous.
		if g.maxSupport(pool) <= g.cfg.MaxColumnsPerTour {
			return 0
		}
	}

	rank := func(a, b *model.RosterColumn) bool {
		if a.TourCount() != b.TourCount() {
			return a.TourCount() > b.TourCount()
		}
		if a.CostQuality != b.CostQuality {
			return a.CostQuality < b.CostQuality
		}
		return a.Key() < b.Key()
	}

	perTour := make(map[string][]*model.RosterColumn)
	for _, col := range pool.Columns() {
		for _, id := range col.Covered {
			perTour[id] = append(perTour[id], col)
		}
	}

	keep := make(map[string]*model.RosterColumn)
	for _, id := range model.TourIDs(g.tours) {
		cols := perTour[id]
		sort.Slice(cols, func(i, j int) bool { return rank(cols[i], cols[j]) })
		limit := g.cfg.MaxColumnsPerTour
		if limit > len(cols) {
			limit = len(cols)
		}
		for _, col := range cols[:limit] {
			keep[col.Key()] = col
		}
	}
	for _, col := range pool.Columns() {
		if col.Slack {
			keep[col.Key()] = col
		}
	}

	kept := make([]*model.RosterColumn, 0, len(keep))
	for _, col := range keep {
		kept = append(kept, col)
	}
	model.SortColumns(kept)
	pool.replace(kept)

	dropped := before - pool.Len()
	if dropped > 0 {
		g.log.Debugw("pool pruned", map[string]any{"dropped": dropped, "kept": pool.Len()})
	}
	return dropped
}

func (g *Generator) maxSupport(pool *Pool) int {
	max := 0
	for _, id := range model.TourIDs(g.tours) {
		if s := pool.Support(id); s > max {
			max = s
		}
	}
	return max
}
