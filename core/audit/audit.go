// Package audit validates a finalized assignment set against the mandatory
// release rules and computes the soft KPIs. It is stateless: one Auditor may
// check any number of independent results.
package audit

import (
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// maxDetails bounds the offending pairs listed per finding.
const maxDetails = 10

// Auditor runs the release checks for one rule set.
type Auditor struct {
	cfg model.SolverConfig
}

// New returns an auditor for the given rules.
func New(cfg model.SolverConfig) *Auditor {
	return &Auditor{cfg: cfg}
}

// Report combines the findings of one audit run.
type Report struct {
	Findings []model.AuditFinding `json:"findings"`
	// Passed is false when any mandatory check failed; soft KPIs never
	// block release by themselves.
	Passed bool `json:"passed"`
}

// Run executes all mandatory checks and soft KPIs against the assignments.
func (a *Auditor) Run(tours []model.TourInstance, assignments []model.Assignment) Report {
	findings := []model.AuditFinding{
		a.checkCoverage(tours, assignments),
		a.checkOverlap(assignments),
		a.checkRest(assignments),
		a.checkSpan(assignments),
	}
	passed := true
	for _, f := range findings {
		if f.Status == model.FindingFail {
			passed = false
		}
	}
	findings = append(findings, a.softKPIs(tours, assignments)...)
	return Report{Findings: findings, Passed: passed}
}
