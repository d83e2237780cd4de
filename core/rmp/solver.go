package rmp

import (
	"context"
	"math"
	"math/bits"
	"sort"
	"time"

	"github.com/DRNaser/shift-optimizer-sub007/core/logger"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// relaxColumnCap disables the root relaxation above this pool size; the
// dense simplex tableau stops paying for itself there and the combinatorial
// bounds carry the search alone.
const relaxColumnCap = 2000

// Solver runs a deterministic branch-and-bound over exact covers. The search
// is single threaded, explores columns in stable sorted order and honours an
// explicit node and wall-clock budget.
type Solver struct {
	MaxNodes int
	Deadline time.Time
	Log      logger.Logger
}

// NewSolver returns a solver using the configured node budget.
func NewSolver(cfg model.SolverConfig, log logger.Logger) *Solver {
	return &Solver{MaxNodes: cfg.MaxNodes, Log: log}
}

type searchState struct {
	m         *Model
	masks     [][]uint64
	perTour   [][]int
	words     int
	maxCover  int
	maxNodes  int
	minCost   float64
	bestSel   []int
	bestCost  float64
	found     bool
	nodes     int
	stop      bool
	abort     error
	checkMask int
	ctx       context.Context
	deadline  time.Time
}

// Solve searches for the minimum-cost exact cover of the model's tours. In
// feasibility-only mode it returns the first cover satisfying the
// cardinality constraint. ErrInfeasible is returned when the search space is
// exhausted without a cover, ErrBudget when the budget ran out before any
// cover was found.
func (s *Solver) Solve(ctx context.Context, m *Model) (*Solution, error) {
	n := len(m.Tours)
	if n == 0 {
		return &Solution{Proven: true}, nil
	}

	bound := 0.0
	if len(m.Columns) <= relaxColumnCap {
		b, err := m.rootBound()
		if err == ErrInfeasible {
			return nil, ErrInfeasible
		}
		if err == nil {
			bound = b
		} else if s.Log != nil {
			s.Log.Warnf("lp relaxation unavailable: %v", err)
		}
	}

	st := s.newState(ctx, m)
	if idx := m.Hint; m.hintCover(idx) {
		st.found = true
		st.bestSel = append([]int(nil), idx...)
		st.bestCost = st.selectionCost(idx)
		if m.FeasibilityOnly {
			sol := &Solution{Selected: st.bestSel, Objective: st.bestCost, Bound: bound, Proven: true}
			return sol, nil
		}
	}

	uncov := make([]uint64, st.words)
	for i := 0; i < n; i++ {
		uncov[i/64] |= 1 << (uint(i) % 64)
	}
	st.dfs(uncov, n, nil, 0)

	if st.abort != nil && !st.found {
		return nil, ErrBudget
	}
	if !st.found {
		return nil, ErrInfeasible
	}
	sel := append([]int(nil), st.bestSel...)
	sort.Ints(sel)
	return &Solution{
		Selected:  sel,
		Objective: st.rawCost(sel),
		Bound:     bound,
		Proven:    st.abort == nil,
		Nodes:     st.nodes,
	}, nil
}

func (s *Solver) newState(ctx context.Context, m *Model) *searchState {
	n := len(m.Tours)
	st := &searchState{
		m:         m,
		words:     (n + 63) / 64,
		maxNodes:  s.MaxNodes,
		bestCost:  math.Inf(1),
		checkMask: 255,
		ctx:       ctx,
		deadline:  s.Deadline,
	}
	tourIdx := make(map[string]int, n)
	for i, id := range m.Tours {
		tourIdx[id] = i
	}
	st.masks = make([][]uint64, len(m.Columns))
	st.perTour = make([][]int, n)
	st.minCost = math.Inf(1)
	for j, col := range m.Columns {
		mask := make([]uint64, st.words)
		inScope := true
		for _, id := range col.Covered {
			i, ok := tourIdx[id]
			if !ok {
				inScope = false
				break
			}
			mask[i/64] |= 1 << (uint(i) % 64)
		}
		if !inScope || len(col.Covered) == 0 {
			continue
		}
		st.masks[j] = mask
		if len(col.Covered) > st.maxCover {
			st.maxCover = len(col.Covered)
		}
		if c := st.cost(j); c < st.minCost {
			st.minCost = c
		}
		for _, id := range col.Covered {
			i := tourIdx[id]
			st.perTour[i] = append(st.perTour[i], j)
		}
	}
	if math.IsInf(st.minCost, 1) {
		st.minCost = 0
	}
	// Cheap columns first so the greedy descent finds a strong incumbent
	// early; the index tiebreak keeps the order reproducible.
	for i := range st.perTour {
		cand := st.perTour[i]
		sort.Slice(cand, func(a, b int) bool {
			ca, cb := st.cost(cand[a]), st.cost(cand[b])
			if ca != cb {
				return ca < cb
			}
			return cand[a] < cand[b]
		})
	}
	return st
}

func (st *searchState) cost(j int) float64 {
	if st.m.FeasibilityOnly {
		return 0
	}
	return st.m.Costs[j]
}

func (st *searchState) selectionCost(sel []int) float64 {
	sum := 0.0
	for _, j := range sel {
		sum += st.cost(j)
	}
	return sum
}

func (st *searchState) rawCost(sel []int) float64 {
	sum := 0.0
	for _, j := range sel {
		sum += st.m.Costs[j]
	}
	return sum
}

// lower is an optimistic completion cost for the remaining uncovered tours.
func (st *searchState) lower(uncovCount int) float64 {
	if st.minCost >= 0 {
		cols := (uncovCount + st.maxCover - 1) / st.maxCover
		return st.minCost * float64(cols)
	}
	return st.minCost * float64(uncovCount)
}

func (st *searchState) dfs(uncov []uint64, uncovCount int, chosen []int, cost float64) {
	if st.stop || st.abort != nil {
		return
	}
	st.nodes++
	if st.nodes&st.checkMask == 0 {
		if err := st.ctx.Err(); err != nil {
			st.abort = err
			return
		}
		if !st.deadline.IsZero() && time.Now().After(st.deadline) {
			st.abort = ErrBudget
			return
		}
	}
	if st.maxNodes > 0 && st.nodes > st.maxNodes {
		st.abort = ErrBudget
		return
	}

	if uncovCount == 0 {
		if st.m.Cardinality >= 0 && len(chosen) != st.m.Cardinality {
			return
		}
		if !st.found || cost < st.bestCost-1e-12 {
			st.found = true
			st.bestCost = cost
			st.bestSel = append(st.bestSel[:0], chosen...)
			if st.m.FeasibilityOnly {
				st.stop = true
			}
		}
		return
	}

	if st.m.Cardinality >= 0 {
		lbCols := (uncovCount + st.maxCover - 1) / st.maxCover
		if len(chosen)+lbCols > st.m.Cardinality {
			return
		}
		if len(chosen)+uncovCount < st.m.Cardinality {
			return
		}
	}
	if st.found && !st.m.FeasibilityOnly && cost+st.lower(uncovCount) >= st.bestCost-1e-12 {
		return
	}

	// Branch on the uncovered tour with the fewest live columns; a tour
	// without any live column prunes the node outright.
	branchTour := -1
	branchLive := 0
	for i := range st.perTour {
		if uncov[i/64]&(1<<(uint(i)%64)) == 0 {
			continue
		}
		live := 0
		for _, j := range st.perTour[i] {
			if st.subset(st.masks[j], uncov) {
				live++
			}
		}
		if live == 0 {
			return
		}
		if branchTour < 0 || live < branchLive {
			branchTour, branchLive = i, live
		}
	}
	if branchTour < 0 {
		return
	}

	next := make([]uint64, st.words)
	for _, j := range st.perTour[branchTour] {
		mask := st.masks[j]
		if !st.subset(mask, uncov) {
			continue
		}
		covered := 0
		for w := 0; w < st.words; w++ {
			next[w] = uncov[w] &^ mask[w]
			covered += bits.OnesCount64(mask[w])
		}
		st.dfs(append([]uint64(nil), next...), uncovCount-covered, append(chosen, j), cost+st.cost(j))
		if st.stop || st.abort != nil {
			return
		}
	}
}

// subset reports whether mask only covers still-uncovered tours.
func (st *searchState) subset(mask, uncov []uint64) bool {
	if mask == nil {
		return false
	}
	for w := 0; w < st.words; w++ {
		if mask[w]&^uncov[w] != 0 {
			return false
		}
	}
	return true
}
