package rmp

import (
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// FilterHint maps a warm-start selection onto model column indices. Columns
// missing from the model or covering tours outside the target set are
// rejected, so an externally supplied incumbent can never seed the search
// with infeasible coverage. The returned indices are sorted.
func FilterHint(m *Model, hint []*model.RosterColumn) []int {
	byKey := make(map[string]int, len(m.Columns))
	for i, col := range m.Columns {
		byKey[col.Key()] = i
	}
	target := make(map[string]bool, len(m.Tours))
	for _, id := range m.Tours {
		target[id] = true
	}

	var idx []int
	for _, col := range hint {
		i, ok := byKey[col.Key()]
		if !ok {
			continue
		}
		inScope := true
		for _, id := range col.Covered {
			if !target[id] {
				inScope = false
				break
			}
		}
		if inScope {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return idx
}

// hintCover validates that the hint indices form an exact cover of the model
// tours and respect the cardinality constraint.
func (m *Model) hintCover(idx []int) bool {
	if len(idx) == 0 {
		return false
	}
	if m.Cardinality >= 0 && len(idx) != m.Cardinality {
		return false
	}
	seen := make(map[string]int, len(m.Tours))
	for _, i := range idx {
		for _, id := range m.Columns[i].Covered {
			seen[id]++
		}
	}
	if len(seen) != len(m.Tours) {
		return false
	}
	for _, id := range m.Tours {
		if seen[id] != 1 {
			return false
		}
	}
	return true
}
