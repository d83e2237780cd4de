package colgen

import "github.com/DRNaser/shift-optimizer-sub007/core/model"

// KillOne removes one column from the candidate solution and re-covers its
// tours by extending the remaining columns. The extended variants are added
// to the pool so a subsequent probe can select a cover with one driver less.
// It returns the number of columns added.
func (g *Generator) KillOne(pool *Pool, selection []*model.RosterColumn) int {
	if !g.cfg.EnableKillOne || len(selection) < 2 {
		return 0
	}
	victim := selection[0]
	for _, col := range selection[1:] {
		if col.Slack {
			continue
		}
		if col.TourCount() < victim.TourCount() ||
			(col.TourCount() == victim.TourCount() && col.Key() < victim.Key()) {
			victim = col
		}
	}

	// Work on copies of the survivors' weeks so partial failures leave the
	// selection untouched.
	type week struct {
		days [model.DaysPerWeek]*model.Block
	}
	var survivors []*week
	for _, col := range selection {
		if col == victim {
			continue
		}
		survivors = append(survivors, &week{days: col.Days})
	}

	for d := 0; d < model.DaysPerWeek; d++ {
		blk := victim.Days[d]
		if blk == nil {
			continue
		}
		housed := false
		for _, w := range survivors {
			if canPlace(g.cfg, w.days, blk) {
				w.days[blk.Day] = blk
				housed = true
				break
			}
		}
		if !housed {
			return 0
		}
	}

	added := 0
	for _, w := range survivors {
		if pool.Add(model.NewColumn(w.days)) {
			added++
		}
	}
	if added > 0 {
		g.log.Debugw("kill-one repair", map[string]any{
			"victim": victim.Key(),
			"added":  added,
		})
	}
	return added
}
