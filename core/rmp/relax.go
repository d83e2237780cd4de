package rmp

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// relaxLP solves the LP relaxation of the set-partitioning model:
// min c'x subject to one equality row per tour (and the cardinality row when
// present) with x >= 0. The model is already in the standard form simplex
// expects, so no conversion step is needed.
func relaxLP(c []float64, rows [][]float64, b []float64) (float64, []float64, error) {
	a := mat.NewDense(len(rows), len(c), nil)
	for i, row := range rows {
		a.SetRow(i, row)
	}
	opt, x, err := lp.Simplex(c, a, b, 1e-9, nil)
	return opt, x, err
}

// lpSolve points to the relaxation solver. Tests override it to simulate
// solver failures.
var lpSolve = relaxLP

// rootBound computes the LP lower bound for the model. It returns
// ErrInfeasible when the relaxation itself has no solution, which proves the
// binary model infeasible without any tree search.
func (m *Model) rootBound() (float64, error) {
	nRows := len(m.Tours)
	if m.Cardinality >= 0 {
		nRows++
	}
	rows := make([][]float64, nRows)
	b := make([]float64, nRows)
	tourIdx := make(map[string]int, len(m.Tours))
	for i, id := range m.Tours {
		tourIdx[id] = i
		rows[i] = make([]float64, len(m.Columns))
		b[i] = 1
	}
	if m.Cardinality >= 0 {
		last := nRows - 1
		rows[last] = make([]float64, len(m.Columns))
		b[last] = float64(m.Cardinality)
		for j := range m.Columns {
			rows[last][j] = 1
		}
	}
	for j, col := range m.Columns {
		for _, id := range col.Covered {
			if i, ok := tourIdx[id]; ok {
				rows[i][j] = 1
			}
		}
	}

	c := m.Costs
	if m.FeasibilityOnly {
		c = make([]float64, len(m.Columns))
	}
	opt, _, err := lpSolve(c, rows, b)
	if err != nil {
		if err == lp.ErrInfeasible {
			return 0, ErrInfeasible
		}
		return 0, err
	}
	return opt, nil
}
