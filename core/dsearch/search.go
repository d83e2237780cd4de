// Package dsearch runs the outer driver-cap search: it probes decreasing
// headcount caps with feasibility-only master solves, triggering bounded
// column repairs when a cap turns out infeasible.
package dsearch

import (
	"context"
	"time"

	"github.com/DRNaser/shift-optimizer-sub007/core/colgen"
	"github.com/DRNaser/shift-optimizer-sub007/core/logger"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
	"github.com/DRNaser/shift-optimizer-sub007/core/rmp"
)

// Searcher owns one cap search over a private pool.
type Searcher struct {
	cfg    model.SolverConfig
	gen    *colgen.Generator
	solver *rmp.Solver
	log    logger.Logger
}

// New returns a searcher using the given generator for repairs.
func New(cfg model.SolverConfig, gen *colgen.Generator, solver *rmp.Solver, log logger.Logger) *Searcher {
	return &Searcher{cfg: cfg, gen: gen, solver: solver, log: log}
}

// Outcome is the result of a cap search. Cap and Selected always describe the
// last proven-feasible answer, never a better but unverified one.
type Outcome struct {
	Cap      int
	Selected []*model.RosterColumn
	Probes   int
	Repairs  int
	// Minimal marks a proven terminal: Cap feasible, Cap-1 infeasible with
	// repairs exhausted.
	Minimal bool
	// BudgetHit marks an exit forced by the wall-clock sub-budget.
	BudgetHit bool
}

// Run lowers the cap from the verified incumbent until the minimal feasible
// headcount is proven or the deadline passes. The incumbent must be a
// verified cover of tourIDs.
func (s *Searcher) Run(ctx context.Context, pool *colgen.Pool, tourIDs []string, incumbent []*model.RosterColumn, deadline time.Time) Outcome {
	out := Outcome{Cap: len(incumbent), Selected: incumbent}
	step := s.cfg.CoarseStep
	if step < 1 || out.Cap-step < 1 {
		step = 1
	}
	fine := step == 1
	capC := out.Cap - step

	for capC >= 1 {
		if time.Now().After(deadline) || ctx.Err() != nil {
			out.BudgetHit = true
			return out
		}
		sel, ok := s.probe(ctx, pool, tourIDs, capC, out.Selected, deadline)
		out.Probes++
		if !ok {
			ok, sel = s.repairAndRetry(ctx, pool, tourIDs, capC, &out, deadline)
		}
		if ok {
			out.Cap, out.Selected = capC, sel
			s.log.Infof("cap %d feasible", capC)
			if !fine && capC-step < 1 {
				// The next coarse hop would cross below one driver; the
				// remaining caps must be probed one by one.
				fine, step = true, 1
			}
			capC -= step
			continue
		}
		s.log.Infof("cap %d infeasible after repairs", capC)
		if !fine {
			// Back off to the last feasible cap and finish with unit steps.
			fine, step = true, 1
			capC = out.Cap - 1
			continue
		}
		out.Minimal = true
		return out
	}
	// Cap one is feasible; there is nothing below it to probe.
	out.Minimal = true
	return out
}

// repairAndRetry runs the bounded bridge/merge cycle and retries the same cap
// once. Repair exhaustion is non-fatal; the caller backs off.
func (s *Searcher) repairAndRetry(ctx context.Context, pool *colgen.Pool, tourIDs []string, capC int, out *Outcome, deadline time.Time) (bool, []*model.RosterColumn) {
	added := 0
	for r := 0; r < s.cfg.RepairRounds; r++ {
		if time.Now().After(deadline) {
			return false, nil
		}
		n := s.gen.Bridge(pool, 2)
		n += s.gen.Merge(pool, 1)
		if n == 0 {
			n += s.gen.KillOne(pool, out.Selected)
		}
		added += n
		if n == 0 {
			break
		}
	}
	out.Repairs += added
	if added == 0 {
		return false, nil
	}
	sel, ok := s.probe(ctx, pool, tourIDs, capC, out.Selected, deadline)
	out.Probes++
	return ok, sel
}

// probe solves the feasibility-only model under the cap. A zero-support tour
// is an immediate infeasibility signal; no solver time is spent on it.
func (s *Searcher) probe(ctx context.Context, pool *colgen.Pool, tourIDs []string, capC int, hint []*model.RosterColumn, deadline time.Time) ([]*model.RosterColumn, bool) {
	if zs := pool.ZeroSupport(tourIDs); len(zs) > 0 {
		s.log.Warnf("zero-support tours %v, skipping probe", zs)
		return nil, false
	}
	cols := pool.Columns()
	m := rmp.NewModel(tourIDs, cols, func(c *model.RosterColumn) float64 { return c.CostStage1 })
	m.Cardinality = capC
	m.FeasibilityOnly = true
	if len(hint) == capC {
		m.Hint = rmp.FilterHint(m, hint)
	}

	solver := *s.solver
	solver.Deadline = deadline
	sol, err := solver.Solve(ctx, m)
	if err != nil {
		return nil, false
	}
	sel := make([]*model.RosterColumn, len(sol.Selected))
	for i, j := range sol.Selected {
		sel[i] = cols[j]
	}
	if v := rmp.VerifyCover(tourIDs, sel, capC); !v.OK {
		s.log.Errorf("probe verification failed at cap %d: %v", capC, v.Errors)
		return nil, false
	}
	return sel, true
}
