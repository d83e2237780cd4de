package dsearch

import (
	"context"
	"testing"
	"time"

	"github.com/DRNaser/shift-optimizer-sub007/core/blocks"
	"github.com/DRNaser/shift-optimizer-sub007/core/colgen"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
	"github.com/DRNaser/shift-optimizer-sub007/core/rmp"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func fixture(t *testing.T, cfg model.SolverConfig, tours []model.TourInstance) (*Searcher, *colgen.Pool, []*model.RosterColumn) {
	t.Helper()
	universe := blocks.NewBuilder(cfg).Build(tours)
	gen := colgen.NewGenerator(cfg, universe, tours, nopLogger{})
	pool := colgen.NewPool(cfg)
	incumbent := gen.Seed(pool)
	solver := rmp.NewSolver(cfg, nopLogger{})
	return New(cfg, gen, solver, nopLogger{}), pool, incumbent
}

func TestRunLowersCap(t *testing.T) {
	// Two tours on separate days: one driver suffices, but the starting
	// incumbent uses two.
	tours := []model.TourInstance{
		{ID: "a", Day: 0, Start: 360, End: 600},
		{ID: "b", Day: 1, Start: 360, End: 600},
	}
	s, pool, _ := fixture(t, model.DefaultSolverConfig(), tours)

	var worse []*model.RosterColumn
	for _, col := range pool.Columns() {
		if col.TourCount() == 1 {
			worse = append(worse, col)
		}
	}
	if len(worse) != 2 {
		t.Fatalf("fixture expects two singleton columns, got %d", len(worse))
	}

	out := s.Run(context.Background(), pool, model.TourIDs(tours), worse, time.Now().Add(time.Minute))
	if out.Cap != 1 {
		t.Fatalf("cap %d, want 1", out.Cap)
	}
	if !out.Minimal || out.BudgetHit {
		t.Fatalf("expected a proven minimal cap, got %+v", out)
	}
	if v := rmp.VerifyCover(model.TourIDs(tours), out.Selected, out.Cap); !v.OK {
		t.Fatalf("selection invalid: %v", v.Errors)
	}
}

func TestRunProvesMinimalOnConflict(t *testing.T) {
	// Two concurrent tours per day force two drivers.
	tours := []model.TourInstance{
		{ID: "0a", Day: 0, Start: 360, End: 600},
		{ID: "0b", Day: 0, Start: 360, End: 600},
		{ID: "1a", Day: 1, Start: 360, End: 600},
		{ID: "1b", Day: 1, Start: 360, End: 600},
	}
	s, pool, incumbent := fixture(t, model.DefaultSolverConfig(), tours)

	out := s.Run(context.Background(), pool, model.TourIDs(tours), incumbent, time.Now().Add(time.Minute))
	if out.Cap != 2 {
		t.Fatalf("cap %d, want 2", out.Cap)
	}
	if !out.Minimal {
		t.Fatalf("cap 1 is impossible, search must prove minimality")
	}
	if out.Probes == 0 {
		t.Fatalf("expected at least one probe")
	}
	if v := rmp.VerifyCover(model.TourIDs(tours), out.Selected, out.Cap); !v.OK {
		t.Fatalf("selection invalid: %v", v.Errors)
	}
}

func TestRunExpiredDeadline(t *testing.T) {
	tours := []model.TourInstance{
		{ID: "a", Day: 0, Start: 360, End: 600},
		{ID: "b", Day: 1, Start: 360, End: 600},
	}
	s, pool, _ := fixture(t, model.DefaultSolverConfig(), tours)

	var worse []*model.RosterColumn
	for _, col := range pool.Columns() {
		if col.TourCount() == 1 {
			worse = append(worse, col)
		}
	}
	out := s.Run(context.Background(), pool, model.TourIDs(tours), worse, time.Now().Add(-time.Second))
	if !out.BudgetHit {
		t.Fatalf("expired deadline must set BudgetHit")
	}
	if out.Cap != len(worse) {
		t.Fatalf("cap must stay at the incumbent, got %d", out.Cap)
	}
}

func TestRunProbesEveryCapBelowCoarseStep(t *testing.T) {
	// Four chainable tours over two days. The pool seeds covers at every
	// cardinality from four singletons down to one packed week, so the search
	// must walk all the way to cap one even though the coarse step is larger
	// than the incumbent.
	tours := []model.TourInstance{
		{ID: "a1", Day: 0, Start: 360, End: 600},
		{ID: "a2", Day: 0, Start: 660, End: 900},
		{ID: "b1", Day: 1, Start: 360, End: 600},
		{ID: "b2", Day: 1, Start: 660, End: 900},
	}
	s, pool, _ := fixture(t, model.DefaultSolverConfig(), tours)

	var worse []*model.RosterColumn
	for _, col := range pool.Columns() {
		if col.TourCount() == 1 {
			worse = append(worse, col)
		}
	}
	if len(worse) != 4 {
		t.Fatalf("fixture expects four singleton columns, got %d", len(worse))
	}

	out := s.Run(context.Background(), pool, model.TourIDs(tours), worse, time.Now().Add(time.Minute))
	if out.Cap != 1 {
		t.Fatalf("cap %d, want 1", out.Cap)
	}
	if !out.Minimal {
		t.Fatalf("cap 1 must be proven minimal, got %+v", out)
	}
	if out.Probes < 3 {
		t.Fatalf("caps 3, 2 and 1 must all be probed, got %d probes", out.Probes)
	}
	if v := rmp.VerifyCover(model.TourIDs(tours), out.Selected, out.Cap); !v.OK {
		t.Fatalf("selection invalid: %v", v.Errors)
	}
}

func TestRunCoarseHandsOffToUnitSteps(t *testing.T) {
	// A coarse step of two reaches cap two in one hop; the caps below must
	// then be probed one by one instead of stepping past cap one.
	tours := []model.TourInstance{
		{ID: "a1", Day: 0, Start: 360, End: 600},
		{ID: "a2", Day: 0, Start: 660, End: 900},
		{ID: "b1", Day: 1, Start: 360, End: 600},
		{ID: "b2", Day: 1, Start: 660, End: 900},
	}
	cfg := model.DefaultSolverConfig()
	cfg.CoarseStep = 2
	s, pool, _ := fixture(t, cfg, tours)

	var worse []*model.RosterColumn
	for _, col := range pool.Columns() {
		if col.TourCount() == 1 {
			worse = append(worse, col)
		}
	}
	out := s.Run(context.Background(), pool, model.TourIDs(tours), worse, time.Now().Add(time.Minute))
	if out.Cap != 1 || !out.Minimal {
		t.Fatalf("expected a proven cap of 1, got %+v", out)
	}
}

func TestRunSingleDriverIncumbent(t *testing.T) {
	tours := []model.TourInstance{
		{ID: "a", Day: 0, Start: 360, End: 600},
		{ID: "b", Day: 1, Start: 360, End: 600},
	}
	s, pool, incumbent := fixture(t, model.DefaultSolverConfig(), tours)
	if len(incumbent) != 1 {
		t.Fatalf("greedy seed should pack both days into one roster, got %d", len(incumbent))
	}
	out := s.Run(context.Background(), pool, model.TourIDs(tours), incumbent, time.Now().Add(time.Minute))
	if out.Cap != 1 || !out.Minimal {
		t.Fatalf("one driver is already minimal, got %+v", out)
	}
}
