package rmp

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// col builds a test column covering the given tour ids on day 0.
func col(ids ...string) *model.RosterColumn {
	tours := make([]model.TourInstance, len(ids))
	for i, id := range ids {
		tours[i] = model.TourInstance{ID: id, Day: 0}
	}
	var days [model.DaysPerWeek]*model.Block
	days[0] = &model.Block{Day: 0, Tours: tours}
	return model.NewColumn(days)
}

func unitCost(*model.RosterColumn) float64 { return 1 }

func TestSolveMinimumCost(t *testing.T) {
	cols := []*model.RosterColumn{col("a"), col("a", "b"), col("b"), col("c")}
	m := NewModel([]string{"a", "b", "c"}, cols, unitCost)
	m.Costs = []float64{1, 1.5, 1, 1}

	s := &Solver{}
	sol, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !sol.Proven {
		t.Fatalf("small model must be proven")
	}
	if math.Abs(sol.Objective-2.5) > 1e-9 {
		t.Fatalf("objective %v, want 2.5", sol.Objective)
	}
	want := []int{1, 3}
	if len(sol.Selected) != len(want) {
		t.Fatalf("selected %v", sol.Selected)
	}
	for i := range want {
		if sol.Selected[i] != want[i] {
			t.Fatalf("selected %v, want %v", sol.Selected, want)
		}
	}
	if sol.Bound > sol.Objective+1e-9 {
		t.Fatalf("root bound %v exceeds objective %v", sol.Bound, sol.Objective)
	}
}

func TestSolveCardinality(t *testing.T) {
	cols := []*model.RosterColumn{
		col("a", "b"), col("c", "d"),
		col("a"), col("b"), col("c"), col("d"),
	}
	m := NewModel([]string{"a", "b", "c", "d"}, cols, unitCost)
	s := &Solver{}

	m.Cardinality = 2
	sol, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("cardinality 2: %v", err)
	}
	if len(sol.Selected) != 2 {
		t.Fatalf("selected %v, want the two pairs", sol.Selected)
	}

	m.Cardinality = 4
	sol, err = s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("cardinality 4: %v", err)
	}
	if len(sol.Selected) != 4 {
		t.Fatalf("selected %v, want the four singles", sol.Selected)
	}

	m.Cardinality = 3
	sol, err = s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("cardinality 3: %v", err)
	}
	if len(sol.Selected) != 3 {
		t.Fatalf("selected %v, want one pair and two singles", sol.Selected)
	}

	// With only the two pairs every cover uses exactly two columns.
	pairs := NewModel([]string{"a", "b", "c", "d"},
		[]*model.RosterColumn{col("a", "b"), col("c", "d")}, unitCost)
	pairs.Cardinality = 3
	if _, err = s.Solve(context.Background(), pairs); err != ErrInfeasible {
		t.Fatalf("cardinality 3 over two pairs must be infeasible, got %v", err)
	}
}

func TestSolveInfeasible(t *testing.T) {
	cols := []*model.RosterColumn{col("b")}
	m := NewModel([]string{"a"}, cols, unitCost)
	s := &Solver{}
	if _, err := s.Solve(context.Background(), m); err != ErrInfeasible {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestSolveEmptyModel(t *testing.T) {
	m := NewModel(nil, nil, unitCost)
	s := &Solver{}
	sol, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !sol.Proven || len(sol.Selected) != 0 {
		t.Fatalf("empty model must be trivially proven")
	}
}

func TestFeasibilityOnlyHintShortCircuits(t *testing.T) {
	cols := []*model.RosterColumn{col("a", "b"), col("a"), col("b")}
	m := NewModel([]string{"a", "b"}, cols, unitCost)
	m.FeasibilityOnly = true
	m.Hint = []int{0}

	s := &Solver{}
	sol, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !sol.Proven || sol.Nodes != 0 {
		t.Fatalf("valid hint must return without search, nodes=%d", sol.Nodes)
	}
	if len(sol.Selected) != 1 || sol.Selected[0] != 0 {
		t.Fatalf("selected %v", sol.Selected)
	}
}

func TestInvalidHintIgnored(t *testing.T) {
	cols := []*model.RosterColumn{col("a", "b"), col("a"), col("b")}
	m := NewModel([]string{"a", "b"}, cols, unitCost)
	// Over-covers "a": the hint must not become the incumbent.
	m.Hint = []int{0, 1}

	s := &Solver{}
	sol, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(sol.Selected) != 1 || sol.Selected[0] != 0 {
		t.Fatalf("selected %v, want the pair column", sol.Selected)
	}
}

func TestSolveNodeBudget(t *testing.T) {
	cols := []*model.RosterColumn{col("a"), col("b")}
	m := NewModel([]string{"a", "b"}, cols, unitCost)
	s := &Solver{MaxNodes: 1}
	if _, err := s.Solve(context.Background(), m); err != ErrBudget {
		t.Fatalf("expected ErrBudget, got %v", err)
	}
}

func TestSolveContextCancelled(t *testing.T) {
	// Eleven tours covered only by pairs: no exact cover exists, so the
	// search would have to exhaust a large tree before failing.
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	var cols []*model.RosterColumn
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			cols = append(cols, col(ids[i], ids[j]))
		}
	}
	m := NewModel(ids, cols, unitCost)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Solver{}
	if _, err := s.Solve(ctx, m); err != ErrBudget {
		t.Fatalf("expected ErrBudget on cancelled context, got %v", err)
	}
}

func TestSolveSurvivesRelaxationFailure(t *testing.T) {
	orig := lpSolve
	lpSolve = func([]float64, [][]float64, []float64) (float64, []float64, error) {
		return 0, nil, errors.New("simulated simplex failure")
	}
	defer func() { lpSolve = orig }()

	cols := []*model.RosterColumn{col("a"), col("b")}
	m := NewModel([]string{"a", "b"}, cols, unitCost)
	s := &Solver{}
	sol, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve without relaxation: %v", err)
	}
	if len(sol.Selected) != 2 {
		t.Fatalf("selected %v", sol.Selected)
	}
	if sol.Bound != 0 {
		t.Fatalf("bound must stay zero when the relaxation fails")
	}
}

func TestFilterHint(t *testing.T) {
	inModel := col("a")
	other := col("b")
	outOfScope := col("a", "z")
	m := NewModel([]string{"a", "b"}, []*model.RosterColumn{inModel, other, outOfScope}, unitCost)

	idx := FilterHint(m, []*model.RosterColumn{outOfScope, other, col("x")})
	if len(idx) != 1 || idx[0] != 1 {
		t.Fatalf("filtered hint %v, want [1]", idx)
	}
}

func TestVerifyCover(t *testing.T) {
	v := VerifyCover([]string{"a", "b"}, []*model.RosterColumn{col("a"), col("b")}, 2)
	if !v.OK {
		t.Fatalf("exact cover rejected: %v", v.Errors)
	}

	v = VerifyCover([]string{"a", "b"}, []*model.RosterColumn{col("a"), col("a", "b")}, -1)
	if v.OK {
		t.Fatalf("double coverage accepted")
	}

	v = VerifyCover([]string{"a", "b"}, []*model.RosterColumn{col("a")}, -1)
	if v.OK {
		t.Fatalf("uncovered tour accepted")
	}

	v = VerifyCover([]string{"a"}, []*model.RosterColumn{col("a", "z")}, -1)
	if v.OK {
		t.Fatalf("out-of-target coverage accepted")
	}

	v = VerifyCover([]string{"a"}, []*model.RosterColumn{col("a")}, 3)
	if v.OK {
		t.Fatalf("count mismatch accepted")
	}
}

func TestSolveDeterministic(t *testing.T) {
	cols := []*model.RosterColumn{
		col("a", "b"), col("b", "c"), col("a"), col("b"), col("c"), col("a", "c"),
	}
	m := NewModel([]string{"a", "b", "c"}, cols, unitCost)
	s := &Solver{}
	first, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	second, err := s.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(first.Selected) != len(second.Selected) || first.Objective != second.Objective {
		t.Fatalf("runs diverge: %v vs %v", first, second)
	}
	for i := range first.Selected {
		if first.Selected[i] != second.Selected[i] {
			t.Fatalf("selection diverges at %d", i)
		}
	}
}
