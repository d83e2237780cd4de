// Package metrics defines the observability contract of the solver. Sinks
// are fed once per solve; implementations live under infra/metrics.
package metrics

import (
	"github.com/DRNaser/shift-optimizer-sub007/core/budget"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// SolveStats summarizes one finished solve.
type SolveStats struct {
	Headcount int
	PeakFleet int
	PoolSize  int
	Probes    int
	Repairs   int
	Passed    bool
	Signature string
	Reasons   []string
}

// MetricsSink records solve outcomes for observability purposes.
type MetricsSink interface {
	RecordSolve(stats SolveStats) error
	RecordPhase(timing budget.PhaseTiming) error
	RecordAudit(findings []model.AuditFinding) error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordSolve(SolveStats) error           { return nil }
func (NopSink) RecordPhase(budget.PhaseTiming) error   { return nil }
func (NopSink) RecordAudit([]model.AuditFinding) error { return nil }
