// Package solve orchestrates a full roster solve: block generation, column
// generation with repairs, the two-stage lexicographic master solve, the
// driver-cap search and the release audit.
package solve

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/DRNaser/shift-optimizer-sub007/core/audit"
	"github.com/DRNaser/shift-optimizer-sub007/core/blocks"
	"github.com/DRNaser/shift-optimizer-sub007/core/budget"
	"github.com/DRNaser/shift-optimizer-sub007/core/colgen"
	"github.com/DRNaser/shift-optimizer-sub007/core/dsearch"
	"github.com/DRNaser/shift-optimizer-sub007/core/events"
	"github.com/DRNaser/shift-optimizer-sub007/core/logger"
	coremetrics "github.com/DRNaser/shift-optimizer-sub007/core/metrics"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
	"github.com/DRNaser/shift-optimizer-sub007/core/rmp"
	"github.com/DRNaser/shift-optimizer-sub007/internal/eventbus"
)

// Engine runs solves. Each call to Solve operates on private state; the
// engine itself holds only configuration and wiring, so concurrent solves
// must use independent engines.
type Engine struct {
	cfg  model.SolverConfig
	log  logger.Logger
	sink coremetrics.MetricsSink
	bus  eventbus.EventBus
}

// Option customizes an engine.
type Option func(*Engine)

// WithMetrics attaches a metrics sink.
func WithMetrics(sink coremetrics.MetricsSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithBus attaches an event bus for solve progress events.
func WithBus(bus eventbus.EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// New creates an engine for the given config.
func New(cfg model.SolverConfig, log logger.Logger, opts ...Option) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("solver config: %w", err)
	}
	e := &Engine{cfg: cfg, log: log, sink: coremetrics.NopSink{}}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Solve assigns the given tour instances to the minimal feasible number of
// weekly rosters. The input is treated as read-only; tours must be unique
// per instance id.
func (e *Engine) Solve(ctx context.Context, input []model.TourInstance) (*Result, error) {
	tours := make([]model.TourInstance, len(input))
	copy(tours, input)
	model.SortTours(tours)
	if err := validateInput(tours); err != nil {
		return nil, err
	}
	tourIDs := model.TourIDs(tours)

	man := budget.NewManager(time.Duration(e.cfg.TimeBudgetSeconds * float64(time.Second)))
	var reasons []string

	// Phase 1: block and column generation.
	man.Begin(budget.PhaseGeneration)
	universe := blocks.NewBuilder(e.cfg).Build(tours)
	pool := colgen.NewPool(e.cfg)
	gen := colgen.NewGenerator(e.cfg, universe, tours, e.log)
	incumbent := gen.Seed(pool)
	repairs := gen.Bridge(pool, 2)
	if !man.Exceeded(budget.PhaseGeneration) {
		merged := gen.Merge(pool, e.cfg.MergeRounds)
		repairs += merged
		if merged == 0 {
			repairs += gen.Collapse(pool)
		}
	}
	gen.Prune(pool)
	man.End(budget.PhaseGeneration)
	e.endPhase(man, budget.PhaseGeneration)
	if e.bus != nil && repairs > 0 {
		e.bus.Publish(events.RepairEvent{Kind: "generation", Added: repairs})
	}

	// Phase 2: stage-1 headcount solve.
	man.Begin(budget.PhaseStage1)
	stage1Sel, stage1Timeout, err := e.solveStage1(ctx, man, pool, tourIDs, incumbent)
	man.End(budget.PhaseStage1)
	e.endPhase(man, budget.PhaseStage1)
	if err != nil {
		return nil, err
	}
	if stage1Timeout {
		reasons = appendUnique(reasons, ReasonSolverTimeout)
	}

	// Phase 3: driver-cap search, then the quality solve at fixed headcount.
	man.Begin(budget.PhaseStage2)
	searcher := dsearch.New(e.cfg, gen, rmp.NewSolver(e.cfg, e.log), e.log)
	dsDeadline := e.splitDeadline(man, budget.PhaseStage2)
	outcome := searcher.Run(ctx, pool, tourIDs, stage1Sel, dsDeadline)
	if e.bus != nil {
		e.bus.Publish(events.ProbeEvent{Cap: outcome.Cap, Feasible: true})
		if outcome.Repairs > 0 {
			e.bus.Publish(events.RepairEvent{Kind: "cap-search", Added: outcome.Repairs})
		}
	}
	if outcome.BudgetHit {
		reasons = appendUnique(reasons, ReasonSolverTimeout)
	}
	if outcome.Minimal && outcome.Repairs > 0 {
		reasons = append(reasons, ReasonRepairExhausted)
	}
	final, quality, err := e.solveStage2(ctx, man, pool, tourIDs, outcome)
	man.End(budget.PhaseStage2)
	e.endPhase(man, budget.PhaseStage2)
	if err != nil {
		return nil, err
	}

	// Final exact verification gates everything downstream.
	if v := rmp.VerifyCover(tourIDs, final, outcome.Cap); !v.OK {
		return nil, &VerificationError{Errors: v.Errors}
	}

	// Buffer phase: assignment binding, audit, signature.
	man.Begin(budget.PhaseBuffer)
	assignments := e.bind(final)
	report := audit.New(e.cfg).Run(tours, assignments)
	man.End(budget.PhaseBuffer)
	e.endPhase(man, budget.PhaseBuffer)

	if man.Overran() {
		reasons = append(reasons, ReasonBudgetOverrun)
	}
	for _, f := range report.Findings {
		if f.Check == "kpi_block_mix" && f.Status == model.FindingWarn {
			reasons = append(reasons, ReasonBadBlockMix)
		}
	}

	res := &Result{
		Assignments: assignments,
		Findings:    report.Findings,
		Headcount:   outcome.Cap,
		Stage1Cost:  float64(outcome.Cap),
		QualityCost: quality,
		PeakFleet:   blocks.PeakFleet(tours),
		BlockMix:    blockMix(assignments),
		PoolSize:    pool.Len(),
		Probes:      outcome.Probes,
		Repairs:     repairs + outcome.Repairs,
		Passed:      report.Passed,
		Signature:   Signature(e.cfg.Seed, tourIDs, final, quality),
		Phases:      man.Report(),
		Reasons:     reasons,
	}
	e.record(res)
	return res, nil
}

// solveStage1 minimizes headcount over the pool. One artificial column per
// tour keeps the model feasible regardless of pool coverage; a selected
// artificial column exposes its tour as uncoverable. On a budget exhaustion
// the greedy incumbent is the verified fallback, never an unset result.
func (e *Engine) solveStage1(ctx context.Context, man *budget.Manager, pool *colgen.Pool, tourIDs []string, incumbent []*model.RosterColumn) ([]*model.RosterColumn, bool, error) {
	cols := pool.Columns()
	all := make([]*model.RosterColumn, len(cols), len(cols)+len(tourIDs))
	copy(all, cols)
	for _, id := range tourIDs {
		all = append(all, model.NewSlackColumn(id, e.cfg.SlackCost))
	}
	m := rmp.NewModel(tourIDs, all, func(c *model.RosterColumn) float64 { return c.CostStage1 })
	m.Hint = rmp.FilterHint(m, incumbent)

	solver := rmp.NewSolver(e.cfg, e.log)
	solver.Deadline = man.Deadline(budget.PhaseStage1)
	sol, err := solver.Solve(ctx, m)
	switch err {
	case nil:
		var sel []*model.RosterColumn
		var uncoverable []string
		for _, j := range sol.Selected {
			if all[j].Slack {
				uncoverable = append(uncoverable, all[j].Covered...)
				continue
			}
			sel = append(sel, all[j])
		}
		if len(uncoverable) > 0 {
			sort.Strings(uncoverable)
			return nil, false, &InfeasibleInputError{TourIDs: uncoverable}
		}
		if v := rmp.VerifyCover(tourIDs, sel, len(sel)); !v.OK {
			return nil, false, &VerificationError{Errors: v.Errors}
		}
		e.log.Infof("stage1 headcount %d (proven=%v, nodes=%d)", len(sel), sol.Proven, sol.Nodes)
		return sel, !sol.Proven, nil
	case rmp.ErrBudget:
		e.log.Warnf("stage1 budget exhausted, falling back to greedy incumbent of %d", len(incumbent))
		return incumbent, true, nil
	case rmp.ErrInfeasible:
		return nil, false, &InfeasibleInputError{TourIDs: pool.ZeroSupport(tourIDs)}
	default:
		return nil, false, fmt.Errorf("stage1 solve: %w", err)
	}
}

// solveStage2 fixes the headcount found by the cap search and minimizes the
// fragmentation cost. The cap-search selection is the verified fallback.
func (e *Engine) solveStage2(ctx context.Context, man *budget.Manager, pool *colgen.Pool, tourIDs []string, outcome dsearch.Outcome) ([]*model.RosterColumn, float64, error) {
	cols := pool.Columns()
	m := rmp.NewModel(tourIDs, cols, func(c *model.RosterColumn) float64 { return c.CostQuality })
	m.Cardinality = outcome.Cap
	m.Hint = rmp.FilterHint(m, outcome.Selected)

	solver := rmp.NewSolver(e.cfg, e.log)
	solver.Deadline = man.Deadline(budget.PhaseStage2)
	sol, err := solver.Solve(ctx, m)
	if err != nil {
		if err == rmp.ErrBudget || err == rmp.ErrInfeasible {
			e.log.Warnf("stage2 fell back to cap-search selection: %v", err)
			return outcome.Selected, qualitySum(outcome.Selected), nil
		}
		return nil, 0, fmt.Errorf("stage2 solve: %w", err)
	}
	sel := make([]*model.RosterColumn, len(sol.Selected))
	for i, j := range sol.Selected {
		sel[i] = cols[j]
	}
	if v := rmp.VerifyCover(tourIDs, sel, outcome.Cap); !v.OK {
		// A corrupt stage-2 selection never masks the verified fallback.
		e.log.Errorf("stage2 verification failed: %v", v.Errors)
		return outcome.Selected, qualitySum(outcome.Selected), nil
	}
	return sel, sol.Objective, nil
}

// bind applies driver identities to the selected columns. Identities are
// v5 UUIDs over the column key, so identical selections label identically.
func (e *Engine) bind(selected []*model.RosterColumn) []model.Assignment {
	sorted := make([]*model.RosterColumn, len(selected))
	copy(sorted, selected)
	model.SortColumns(sorted)

	out := make([]model.Assignment, 0, len(sorted))
	for _, col := range sorted {
		work := col.WorkMinutes()
		dt := model.DriverPT
		if work >= e.cfg.FTEMinutes {
			dt = model.DriverFTE
		}
		out = append(out, model.Assignment{
			DriverID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("driver|"+col.Key())).String(),
			DriverType: dt,
			ColumnKey:  col.Key(),
			Days:       col.Days,
			Covered:    col.Covered,
			WorkMin:    work,
		})
	}
	return out
}

func (e *Engine) endPhase(man *budget.Manager, p budget.Phase) {
	if e.bus == nil {
		return
	}
	for _, t := range man.Report() {
		if t.Phase == p {
			e.bus.Publish(events.PhaseEvent{Phase: p, Used: t.Used, Overrun: t.Overrun})
		}
	}
}

// splitDeadline gives the cap search the front share of the stage-2 slice,
// leaving the rest for the quality solve.
func (e *Engine) splitDeadline(man *budget.Manager, p budget.Phase) time.Time {
	full := man.Remaining(p)
	return time.Now().Add(full * 3 / 5)
}

func (e *Engine) record(res *Result) {
	for _, t := range res.Phases {
		if err := e.sink.RecordPhase(t); err != nil {
			e.log.Warnf("metrics phase record: %v", err)
		}
	}
	if err := e.sink.RecordAudit(res.Findings); err != nil {
		e.log.Warnf("metrics audit record: %v", err)
	}
	stats := coremetrics.SolveStats{
		Headcount: res.Headcount,
		PeakFleet: res.PeakFleet,
		PoolSize:  res.PoolSize,
		Probes:    res.Probes,
		Repairs:   res.Repairs,
		Passed:    res.Passed,
		Signature: res.Signature,
		Reasons:   res.Reasons,
	}
	if err := e.sink.RecordSolve(stats); err != nil {
		e.log.Warnf("metrics solve record: %v", err)
	}
	if e.bus != nil {
		e.bus.Publish(events.SolveFinished{
			Headcount: res.Headcount,
			Signature: res.Signature,
			Passed:    res.Passed,
			Reasons:   res.Reasons,
		})
	}
}

// validateInput rejects duplicate instance ids and malformed day indexes
// before any solver time is spent.
func validateInput(tours []model.TourInstance) error {
	seen := make(map[string]bool, len(tours))
	var bad []string
	for _, t := range tours {
		if seen[t.ID] || t.Day < 0 || t.Day >= model.DaysPerWeek {
			bad = append(bad, t.ID)
		}
		seen[t.ID] = true
	}
	if len(bad) > 0 {
		return &InfeasibleInputError{TourIDs: bad}
	}
	return nil
}

func appendUnique(reasons []string, r string) []string {
	for _, have := range reasons {
		if have == r {
			return reasons
		}
	}
	return append(reasons, r)
}

func qualitySum(cols []*model.RosterColumn) float64 {
	sum := 0.0
	for _, c := range cols {
		sum += c.CostQuality
	}
	return sum
}

func blockMix(assignments []model.Assignment) map[string]int {
	mix := make(map[string]int)
	for _, asn := range assignments {
		for _, b := range asn.Days {
			if b != nil {
				mix[string(b.Type())]++
			}
		}
	}
	return mix
}
