// Package rmp solves the restricted master problem: a binary set-partitioning
// model over the column pool with an optional cardinality constraint, a
// feasibility-only mode and warm-start hints. The search is a deterministic
// branch-and-bound over exact covers, bounded by the LP relaxation.
package rmp

import (
	"errors"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Model is one master-problem instance. Columns must be sorted by key and
// Tours sorted by id before the model is handed to the solver; the solver
// never reorders them, so identical input produces an identical search tree.
type Model struct {
	// Tours are the target tour ids requiring exactly-once coverage.
	Tours []string
	// Columns is the candidate pool, parallel to Costs.
	Columns []*model.RosterColumn
	Costs   []float64
	// Cardinality adds the constraint sum(x) == Cardinality when >= 0.
	Cardinality int
	// FeasibilityOnly stops at the first verified cover instead of proving
	// optimality; objective coefficients are ignored.
	FeasibilityOnly bool
	// Hint is an optional warm-start selection (indices into Columns).
	Hint []int
}

// Solution is the outcome of one solve.
type Solution struct {
	// Selected holds the chosen column indices in ascending order.
	Selected []int
	// Objective is the cost of the selection under the model's costs.
	Objective float64
	// Bound is the LP relaxation value at the root, when available.
	Bound float64
	// Proven marks an exhausted search: no better selection exists.
	Proven bool
	// Nodes counts the explored branch-and-bound nodes.
	Nodes int
}

var (
	// ErrInfeasible indicates the model has no exact cover under the
	// cardinality constraint.
	ErrInfeasible = errors.New("rmp: set partition infeasible")
	// ErrBudget indicates the node or time budget ran out before any
	// feasible selection was found.
	ErrBudget = errors.New("rmp: search budget exhausted")
)

// NewModel assembles a model for the given tours and columns using the
// supplied per-column cost function.
func NewModel(tours []string, cols []*model.RosterColumn, cost func(*model.RosterColumn) float64) *Model {
	costs := make([]float64, len(cols))
	for i, c := range cols {
		costs[i] = cost(c)
	}
	return &Model{Tours: tours, Columns: cols, Costs: costs, Cardinality: -1}
}
