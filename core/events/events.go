// Package events defines the solve progress events published on the event
// bus. Subscribers receive them best-effort; the solve never blocks on a
// slow consumer.
package events

import (
	"time"

	"github.com/DRNaser/shift-optimizer-sub007/core/budget"
)

// PhaseEvent marks the end of a budget phase.
type PhaseEvent struct {
	Phase   budget.Phase
	Used    time.Duration
	Overrun bool
}

// RepairEvent reports columns added by one repair kind.
type RepairEvent struct {
	Kind  string
	Added int
}

// ProbeEvent reports the outcome of one driver-cap probe.
type ProbeEvent struct {
	Cap      int
	Feasible bool
}

// SolveFinished reports the final verdict of a solve.
type SolveFinished struct {
	Headcount int
	Signature string
	Passed    bool
	Reasons   []string
}
