// Package blocks groups feasible daily tour sequences into driver blocks and
// computes fleet-level concurrency bounds.
package blocks

import (
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Builder generates all feasible blocks of 1-3 tours per day.
type Builder struct {
	cfg model.SolverConfig
}

// NewBuilder returns a block builder for the given rules.
func NewBuilder(cfg model.SolverConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Result holds the immutable block universe of one solve.
type Result struct {
	// PerDay lists blocks by day, ordered by start time then key.
	PerDay map[int][]*model.Block
	// ByTour lists the blocks covering each tour instance.
	ByTour map[string][]*model.Block
}

// Blocks returns every block in deterministic day order.
func (r *Result) Blocks() []*model.Block {
	var out []*model.Block
	for day := 0; day < model.DaysPerWeek; day++ {
		out = append(out, r.PerDay[day]...)
	}
	return out
}

// Build generates the block universe for the given tours. Blocks chain at
// most three tours, respect pairwise non-overlap, the minimum intra-day gap
// and the span policy of their type. Single-tour blocks whose tour also fits
// into some denser block are tagged with a multi-tour alternative.
func (b *Builder) Build(tours []model.TourInstance) *Result {
	byDay := make(map[int][]model.TourInstance)
	for _, t := range tours {
		byDay[t.Day] = append(byDay[t.Day], t)
	}

	res := &Result{
		PerDay: make(map[int][]*model.Block),
		ByTour: make(map[string][]*model.Block),
	}
	hasAlt := make(map[string]bool)

	for day := 0; day < model.DaysPerWeek; day++ {
		dayTours := byDay[day]
		model.SortTours(dayTours)

		var blocks []*model.Block
		for i := range dayTours {
			if blk := b.admit(day, []model.TourInstance{dayTours[i]}); blk != nil {
				blocks = append(blocks, blk)
			}
		}
		for i := range dayTours {
			for j := range dayTours {
				if !b.chainable(dayTours[i], dayTours[j]) {
					continue
				}
				pair := []model.TourInstance{dayTours[i], dayTours[j]}
				if blk := b.admit(day, pair); blk != nil {
					blocks = append(blocks, blk)
				}
				for k := range dayTours {
					if !b.chainable(dayTours[j], dayTours[k]) {
						continue
					}
					triple := []model.TourInstance{dayTours[i], dayTours[j], dayTours[k]}
					if blk := b.admit(day, triple); blk != nil {
						blocks = append(blocks, blk)
					}
				}
			}
		}

		sort.Slice(blocks, func(x, y int) bool {
			if blocks[x].StartAbs() != blocks[y].StartAbs() {
				return blocks[x].StartAbs() < blocks[y].StartAbs()
			}
			return blocks[x].Key() < blocks[y].Key()
		})
		res.PerDay[day] = blocks

		for _, blk := range blocks {
			if blk.Type() == model.BlockSingle {
				continue
			}
			for _, id := range blk.TourIDs() {
				hasAlt[id] = true
			}
		}
	}

	for day := 0; day < model.DaysPerWeek; day++ {
		for _, blk := range res.PerDay[day] {
			if blk.Type() == model.BlockSingle {
				blk.HasMultiTourAlternative = hasAlt[blk.Tours[0].ID]
			}
			for _, id := range blk.TourIDs() {
				res.ByTour[id] = append(res.ByTour[id], blk)
			}
		}
	}
	return res
}

// chainable reports whether b2 may directly follow b1 inside one block.
func (b *Builder) chainable(t1, t2 model.TourInstance) bool {
	return t2.StartAbs()-t1.EndAbs() >= b.cfg.MinGap
}

// admit validates the span policy and materializes the block, or returns nil.
func (b *Builder) admit(day int, tours []model.TourInstance) *model.Block {
	blk := &model.Block{Day: day, Tours: tours}
	span := blk.Span()
	if span <= b.cfg.MaxSpan {
		return blk
	}
	if blk.IsSplit(b.cfg.SplitBreak) && span <= b.cfg.MaxSplitSpan {
		return blk
	}
	return nil
}
