// Package colgen builds and repairs the roster column pool consumed by the
// master solver.
package colgen

import (
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Pool is the working set of roster columns of one solve. Columns are
// deduplicated by key and iterated in sorted key order so the master solver
// always sees an identical model for identical input.
type Pool struct {
	cfg     model.SolverConfig
	byKey   map[string]*model.RosterColumn
	ordered []*model.RosterColumn
	support map[string]int
	dirty   bool
}

// NewPool returns an empty pool using cfg for column cost scoring.
func NewPool(cfg model.SolverConfig) *Pool {
	return &Pool{
		cfg:     cfg,
		byKey:   make(map[string]*model.RosterColumn),
		support: make(map[string]int),
	}
}

// Add scores and inserts the column. It reports whether the column was new.
func (p *Pool) Add(col *model.RosterColumn) bool {
	key := col.Key()
	if _, ok := p.byKey[key]; ok {
		return false
	}
	col.CostStage1 = 1
	if col.Slack {
		col.CostStage1 = p.cfg.SlackCost
	}
	col.CostQuality = p.cfg.QualityCost(col)
	p.byKey[key] = col
	for _, id := range col.Covered {
		p.support[id]++
	}
	p.dirty = true
	return true
}

// Len returns the number of pooled columns.
func (p *Pool) Len() int { return len(p.byKey) }

// Columns returns the pooled columns sorted by key.
func (p *Pool) Columns() []*model.RosterColumn {
	if p.dirty || p.ordered == nil {
		p.ordered = make([]*model.RosterColumn, 0, len(p.byKey))
		for _, col := range p.byKey {
			p.ordered = append(p.ordered, col)
		}
		model.SortColumns(p.ordered)
		p.dirty = false
	}
	return p.ordered
}

// Support returns the number of pooled columns covering the tour.
func (p *Pool) Support(tourID string) int { return p.support[tourID] }

// ZeroSupport returns the sorted ids among tourIDs that no pooled column
// covers. A non-empty result is an immediate infeasibility signal.
func (p *Pool) ZeroSupport(tourIDs []string) []string {
	var out []string
	for _, id := range tourIDs {
		if p.support[id] == 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// LowSupport returns the sorted ids among tourIDs covered by at most max
// pooled columns.
func (p *Pool) LowSupport(tourIDs []string, max int) []string {
	var out []string
	for _, id := range tourIDs {
		if p.support[id] <= max {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// replace swaps the pool content for the given columns, recomputing support.
func (p *Pool) replace(cols []*model.RosterColumn) {
	p.byKey = make(map[string]*model.RosterColumn, len(cols))
	p.support = make(map[string]int)
	for _, col := range cols {
		p.byKey[col.Key()] = col
		for _, id := range col.Covered {
			p.support[id]++
		}
	}
	p.dirty = true
}
