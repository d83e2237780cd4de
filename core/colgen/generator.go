package colgen

import (
	"github.com/DRNaser/shift-optimizer-sub007/core/blocks"
	"github.com/DRNaser/shift-optimizer-sub007/core/logger"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Generator produces and repairs roster columns from the block universe.
// All generation is deterministic: identical input and seed yield identical
// columns in identical order.
type Generator struct {
	cfg      model.SolverConfig
	universe *blocks.Result
	tours    []model.TourInstance
	byID     map[string]model.TourInstance
	log      logger.Logger
}

// NewGenerator returns a generator over the given block universe.
func NewGenerator(cfg model.SolverConfig, universe *blocks.Result, tours []model.TourInstance, log logger.Logger) *Generator {
	sorted := make([]model.TourInstance, len(tours))
	copy(sorted, tours)
	model.SortTours(sorted)
	byID := make(map[string]model.TourInstance, len(sorted))
	for _, t := range sorted {
		byID[t.ID] = t
	}
	return &Generator{cfg: cfg, universe: universe, tours: sorted, byID: byID, log: log}
}

// Seed fills the pool with the initial columns: one column per block plus a
// greedy multi-day packing that partitions the whole tour set. The partition
// is returned as the first incumbent for the master solver.
func (g *Generator) Seed(pool *Pool) []*model.RosterColumn {
	for _, blk := range g.universe.Blocks() {
		var days [model.DaysPerWeek]*model.Block
		days[blk.Day] = blk
		pool.Add(model.NewColumn(days))
	}

	uncovered := make(map[string]bool, len(g.tours))
	for _, t := range g.tours {
		uncovered[t.ID] = true
	}

	var incumbent []*model.RosterColumn
	for len(uncovered) > 0 {
		anchor := g.pickAnchor(uncovered)
		days := g.packWeek(anchor, uncovered)
		col := model.NewColumn(days)
		if col.TourCount() == 0 {
			// No block covers the anchor. The tour stays unsupported and the
			// master model falls back to its artificial column.
			g.log.Warnf("tour %s has no covering block", anchor.ID)
			delete(uncovered, anchor.ID)
			continue
		}
		for _, id := range col.Covered {
			delete(uncovered, id)
		}
		pool.Add(col)
		incumbent = append(incumbent, col)
	}
	g.log.Debugw("seed pool built", map[string]any{
		"columns":   pool.Len(),
		"incumbent": len(incumbent),
	})
	return incumbent
}

// pickAnchor selects the uncovered tour with the fewest covering blocks,
// breaking ties by earliest start then id.
func (g *Generator) pickAnchor(uncovered map[string]bool) model.TourInstance {
	var best model.TourInstance
	bestAlt := -1
	for _, t := range g.tours {
		if !uncovered[t.ID] {
			continue
		}
		alt := len(g.universe.ByTour[t.ID])
		if bestAlt == -1 || alt < bestAlt {
			best, bestAlt = t, alt
		}
	}
	return best
}

// packWeek anchors a column on the given tour and packs the remaining days
// with blocks of uncovered tours, respecting rest and weekly hour caps.
func (g *Generator) packWeek(anchor model.TourInstance, uncovered map[string]bool) [model.DaysPerWeek]*model.Block {
	var days [model.DaysPerWeek]*model.Block
	days[anchor.Day] = g.bestBlock(g.universe.ByTour[anchor.ID], days, uncovered)

	for d := 0; d < model.DaysPerWeek; d++ {
		if days[d] != nil {
			continue
		}
		if blk := g.bestBlock(g.universe.PerDay[d], days, uncovered); blk != nil {
			days[d] = blk
		}
	}
	return days
}

// bestBlock returns the placeable candidate covering the most uncovered
// tours, breaking ties by earliest start then key. It returns nil when no
// candidate covers at least one uncovered tour.
func (g *Generator) bestBlock(candidates []*model.Block, days [model.DaysPerWeek]*model.Block, uncovered map[string]bool) *model.Block {
	var best *model.Block
	bestGain := 0
	for _, blk := range candidates {
		gain := 0
		clean := true
		for _, id := range blk.TourIDs() {
			if uncovered[id] {
				gain++
			} else {
				clean = false
				break
			}
		}
		if !clean || gain == 0 || !canPlace(g.cfg, days, blk) {
			continue
		}
		if best == nil || gain > bestGain ||
			(gain == bestGain && blk.StartAbs() < best.StartAbs()) ||
			(gain == bestGain && blk.StartAbs() == best.StartAbs() && blk.Key() < best.Key()) {
			best, bestGain = blk, gain
		}
	}
	return best
}

// lowSupportSet returns a membership set of the pool's low-support tours.
func (g *Generator) lowSupportSet(pool *Pool, max int) map[string]bool {
	ids := pool.LowSupport(model.TourIDs(g.tours), max)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
