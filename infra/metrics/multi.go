package metrics

import (
	"github.com/DRNaser/shift-optimizer-sub007/core/budget"
	coremetrics "github.com/DRNaser/shift-optimizer-sub007/core/metrics"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// MultiSink fans solve records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the record to all sinks, returning the first error.
func (m *MultiSink) RecordSolve(stats coremetrics.SolveStats) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(stats); err != nil {
			return err
		}
	}
	return nil
}

// RecordPhase forwards phase timings.
func (m *MultiSink) RecordPhase(t budget.PhaseTiming) error {
	for _, s := range m.Sinks {
		if err := s.RecordPhase(t); err != nil {
			return err
		}
	}
	return nil
}

// RecordAudit forwards audit findings.
func (m *MultiSink) RecordAudit(findings []model.AuditFinding) error {
	for _, s := range m.Sinks {
		if err := s.RecordAudit(findings); err != nil {
			return err
		}
	}
	return nil
}
