package colgen

import "github.com/DRNaser/shift-optimizer-sub007/core/model"

// mergeCandidateCap bounds the number of short rosters considered per round
// so a fragmented pool cannot blow up the pairwise scan.
const mergeCandidateCap = 200

// Merge pairwise-combines short rosters with disjoint day sets into denser
// columns. Rounds stop early when a pass makes no progress. It returns the
// number of columns added.
func (g *Generator) Merge(pool *Pool, rounds int) int {
	if !g.cfg.EnableMerge {
		return 0
	}
	added := 0
	for r := 0; r < rounds; r++ {
		shorts := g.shortColumns(pool)
		progress := false
		for i := 0; i < len(shorts); i++ {
			for j := i + 1; j < len(shorts); j++ {
				merged := g.combine(shorts[i], shorts[j])
				if merged == nil {
					continue
				}
				if pool.Add(merged) {
					added++
					progress = true
				}
			}
		}
		if !progress {
			break
		}
	}
	if added > 0 {
		g.log.Debugw("merge repair", map[string]any{"added": added})
	}
	return added
}

// Collapse merges three short rosters into two by redistributing the blocks
// of one roster over the other two. It is intended for use only after Merge
// has plateaued. It returns the number of columns added.
func (g *Generator) Collapse(pool *Pool) int {
	if !g.cfg.EnableCollapse {
		return 0
	}
	shorts := g.shortColumns(pool)
	added := 0
	for ci, donor := range shorts {
		for ai := 0; ai < len(shorts); ai++ {
			if ai == ci {
				continue
			}
			for bi := ai + 1; bi < len(shorts); bi++ {
				if bi == ci {
					continue
				}
				a, b, ok := g.redistribute(donor, shorts[ai], shorts[bi])
				if !ok {
					continue
				}
				if pool.Add(a) {
					added++
				}
				if pool.Add(b) {
					added++
				}
			}
		}
		if added > 0 {
			// One successful collapse per donor is enough per pass.
			break
		}
	}
	if added > 0 {
		g.log.Debugw("collapse repair", map[string]any{"added": added})
	}
	return added
}

// shortColumns returns the fragmentation candidates in deterministic order.
func (g *Generator) shortColumns(pool *Pool) []*model.RosterColumn {
	var shorts []*model.RosterColumn
	for _, col := range pool.Columns() {
		if !col.Slack && col.ShortRoster() {
			shorts = append(shorts, col)
		}
		if len(shorts) == mergeCandidateCap {
			break
		}
	}
	return shorts
}

// combine joins two columns with disjoint day sets when the result stays
// feasible, or returns nil.
func (g *Generator) combine(a, b *model.RosterColumn) *model.RosterColumn {
	var days [model.DaysPerWeek]*model.Block
	for d := 0; d < model.DaysPerWeek; d++ {
		switch {
		case a.Days[d] != nil && b.Days[d] != nil:
			return nil
		case a.Days[d] != nil:
			days[d] = a.Days[d]
		case b.Days[d] != nil:
			days[d] = b.Days[d]
		}
	}
	if !weekFeasible(g.cfg, days) {
		return nil
	}
	return model.NewColumn(days)
}

// redistribute moves every block of donor into a or b, returning the two
// extended columns when all blocks could be housed.
func (g *Generator) redistribute(donor, a, b *model.RosterColumn) (*model.RosterColumn, *model.RosterColumn, bool) {
	daysA := a.Days
	daysB := b.Days
	for d := 0; d < model.DaysPerWeek; d++ {
		blk := donor.Days[d]
		if blk == nil {
			continue
		}
		switch {
		case canPlace(g.cfg, daysA, blk):
			daysA[blk.Day] = blk
		case canPlace(g.cfg, daysB, blk):
			daysB[blk.Day] = blk
		default:
			return nil, nil, false
		}
	}
	return model.NewColumn(daysA), model.NewColumn(daysB), true
}
