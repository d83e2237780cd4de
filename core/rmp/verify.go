package rmp

import (
	"fmt"
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Verification is the outcome of the independent post-solve coverage check.
// It is a plain result value so callers can branch on it without
// exception-style control flow.
type Verification struct {
	OK     bool
	Errors []string
}

// VerifyCover independently recomputes coverage from the selected columns
// and checks that every tour is covered exactly once, that no tour is
// covered twice and that the selection size matches the reported count.
// A mismatch must surface as VERIFICATION_FAILED, never as a usable result.
func VerifyCover(tours []string, selected []*model.RosterColumn, expectCount int) Verification {
	v := Verification{OK: true}
	fail := func(format string, args ...any) {
		v.OK = false
		v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
	}

	counts := make(map[string]int, len(tours))
	for _, col := range selected {
		for _, id := range col.Covered {
			counts[id]++
		}
	}
	target := make(map[string]bool, len(tours))
	for _, id := range tours {
		target[id] = true
		switch counts[id] {
		case 1:
		case 0:
			fail("tour %s uncovered", id)
		default:
			fail("tour %s covered %d times", id, counts[id])
		}
	}
	extra := make([]string, 0)
	for id := range counts {
		if !target[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		fail("tour %s outside target set", id)
	}
	if expectCount >= 0 && len(selected) != expectCount {
		fail("selected %d columns, expected %d", len(selected), expectCount)
	}
	return v
}
