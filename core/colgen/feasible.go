package colgen

import "github.com/DRNaser/shift-optimizer-sub007/core/model"

// weekFeasible validates a full week of blocks against the rest rule and the
// weekly work cap. Rest is measured on the absolute minute-of-week timeline,
// so the end of a cross-midnight block is correctly placed on the following
// calendar day.
func weekFeasible(cfg model.SolverConfig, days [model.DaysPerWeek]*model.Block) bool {
	work := 0
	var prev *model.Block
	for d := 0; d < model.DaysPerWeek; d++ {
		b := days[d]
		if b == nil {
			continue
		}
		work += b.Work()
		if prev != nil && b.StartAbs()-prev.EndAbs() < cfg.MinRest {
			return false
		}
		prev = b
	}
	return work <= cfg.MaxWeeklyWork
}

// canPlace reports whether blk fits into the week without violating the rest
// rule against the neighbouring working days or the weekly work cap.
func canPlace(cfg model.SolverConfig, days [model.DaysPerWeek]*model.Block, blk *model.Block) bool {
	if days[blk.Day] != nil {
		return false
	}
	work := blk.Work()
	for d := 0; d < model.DaysPerWeek; d++ {
		if days[d] != nil {
			work += days[d].Work()
		}
	}
	if work > cfg.MaxWeeklyWork {
		return false
	}
	for d := blk.Day - 1; d >= 0; d-- {
		if days[d] != nil {
			if blk.StartAbs()-days[d].EndAbs() < cfg.MinRest {
				return false
			}
			break
		}
	}
	for d := blk.Day + 1; d < model.DaysPerWeek; d++ {
		if days[d] != nil {
			if days[d].StartAbs()-blk.EndAbs() < cfg.MinRest {
				return false
			}
			break
		}
	}
	return true
}
