package colgen

import "github.com/DRNaser/shift-optimizer-sub007/core/model"

// Bridge targets tours whose support count is at or below the threshold and
// admits new feasible columns anchored on them. It returns the number of
// columns added.
func (g *Generator) Bridge(pool *Pool, supportMax int) int {
	targets := pool.LowSupport(model.TourIDs(g.tours), supportMax)
	if len(targets) == 0 {
		return 0
	}
	low := g.lowSupportSet(pool, supportMax)

	added := 0
	for _, id := range targets {
		anchorBlocks := g.universe.ByTour[id]
		for _, anchorBlk := range anchorBlocks {
			var days [model.DaysPerWeek]*model.Block
			days[anchorBlk.Day] = anchorBlk
			for d := 0; d < model.DaysPerWeek; d++ {
				if days[d] != nil {
					continue
				}
				if blk := g.bridgeBlock(g.universe.PerDay[d], days, low); blk != nil {
					days[d] = blk
				}
			}
			col := model.NewColumn(days)
			if !weekFeasible(g.cfg, col.Days) {
				// Infeasible candidates are discarded locally, never escalated.
				continue
			}
			if pool.Add(col) {
				added++
			}
		}
	}
	if added > 0 {
		g.log.Debugw("bridge repair", map[string]any{"targets": len(targets), "added": added})
	}
	return added
}

// bridgeBlock favours blocks touching low-support tours, then denser blocks,
// then earlier starts, then key order.
func (g *Generator) bridgeBlock(candidates []*model.Block, days [model.DaysPerWeek]*model.Block, low map[string]bool) *model.Block {
	var best *model.Block
	bestLow, bestSize := 0, 0
	for _, blk := range candidates {
		if !canPlace(g.cfg, days, blk) {
			continue
		}
		lowHits := 0
		for _, id := range blk.TourIDs() {
			if low[id] {
				lowHits++
			}
		}
		size := len(blk.Tours)
		better := false
		switch {
		case best == nil:
			better = true
		case lowHits != bestLow:
			better = lowHits > bestLow
		case size != bestSize:
			better = size > bestSize
		case blk.StartAbs() != best.StartAbs():
			better = blk.StartAbs() < best.StartAbs()
		default:
			better = blk.Key() < best.Key()
		}
		if better {
			best, bestLow, bestSize = blk, lowHits, size
		}
	}
	return best
}
