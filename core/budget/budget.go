// Package budget allocates the solve's wall-clock ceiling across phases and
// records overruns. Phases run sequentially and check their slice boundary
// cooperatively; an overrun is a reportable condition, never a silent
// extension.
package budget

import (
	"sort"
	"time"
)

// Phase identifies one slice of the solve.
type Phase string

const (
	PhaseGeneration Phase = "generation"
	PhaseStage1     Phase = "stage1"
	PhaseStage2     Phase = "stage2"
	PhaseBuffer     Phase = "buffer"
)

// shares is the fixed budget split across phases.
var shares = map[Phase]float64{
	PhaseGeneration: 0.50,
	PhaseStage1:     0.15,
	PhaseStage2:     0.28,
	PhaseBuffer:     0.05,
}

// PhaseTiming reports how one phase used its slice.
type PhaseTiming struct {
	Phase     Phase         `json:"phase"`
	Allocated time.Duration `json:"allocated"`
	Used      time.Duration `json:"used"`
	Overrun   bool          `json:"overrun"`
}

// Manager tracks the per-phase deadlines of a single solve. It is not safe
// for concurrent use; each solve owns its manager.
type Manager struct {
	total   time.Duration
	now     func() time.Time
	started map[Phase]time.Time
	used    map[Phase]time.Duration
	overrun map[Phase]bool
}

// NewManager creates a manager for the given total budget.
func NewManager(total time.Duration) *Manager {
	return NewManagerWithClock(total, time.Now)
}

// NewManagerWithClock injects the clock, for tests.
func NewManagerWithClock(total time.Duration, now func() time.Time) *Manager {
	return &Manager{
		total:   total,
		now:     now,
		started: make(map[Phase]time.Time),
		used:    make(map[Phase]time.Duration),
		overrun: make(map[Phase]bool),
	}
}

// Allocated returns the slice assigned to the phase.
func (m *Manager) Allocated(p Phase) time.Duration {
	return time.Duration(shares[p] * float64(m.total))
}

// Begin marks the phase start.
func (m *Manager) Begin(p Phase) {
	m.started[p] = m.now()
}

// End marks the phase end, recording use and whether the slice was overrun.
func (m *Manager) End(p Phase) {
	start, ok := m.started[p]
	if !ok {
		return
	}
	used := m.now().Sub(start)
	m.used[p] = used
	if used > m.Allocated(p) {
		m.overrun[p] = true
	}
}

// Deadline returns the absolute end of the phase slice. Begin must have been
// called for the phase.
func (m *Manager) Deadline(p Phase) time.Time {
	return m.started[p].Add(m.Allocated(p))
}

// Remaining returns the time left in the phase slice, never negative.
func (m *Manager) Remaining(p Phase) time.Duration {
	left := m.Deadline(p).Sub(m.now())
	if left < 0 {
		return 0
	}
	return left
}

// Exceeded reports whether the phase slice has run out. Long-running loops
// call this at every iteration boundary and stop cleanly.
func (m *Manager) Exceeded(p Phase) bool {
	return m.Remaining(p) == 0
}

// Overran reports whether any phase overran its slice.
func (m *Manager) Overran() bool {
	return len(m.overrun) > 0
}

// Report returns the per-phase timings in stable phase order.
func (m *Manager) Report() []PhaseTiming {
	var out []PhaseTiming
	for p := range m.used {
		out = append(out, PhaseTiming{
			Phase:     p,
			Allocated: m.Allocated(p),
			Used:      m.used[p],
			Overrun:   m.overrun[p],
		})
	}
	sort.Slice(out, func(i, j int) bool { return phaseOrder(out[i].Phase) < phaseOrder(out[j].Phase) })
	return out
}

func phaseOrder(p Phase) int {
	switch p {
	case PhaseGeneration:
		return 0
	case PhaseStage1:
		return 1
	case PhaseStage2:
		return 2
	default:
		return 3
	}
}
