package audit

import (
	"fmt"

	"github.com/DRNaser/shift-optimizer-sub007/core/blocks"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// badMixThreshold is the share of avoidable single-tour blocks above which
// the block-mix KPI warns.
const badMixThreshold = 0.4

// softKPIs computes the advisory indicators. They are reported as WARN at
// worst and never block release.
func (a *Auditor) softKPIs(tours []model.TourInstance, assignments []model.Assignment) []model.AuditFinding {
	return []model.AuditFinding{
		a.ptRatio(assignments),
		a.blockMix(assignments),
		a.peakFleet(tours, assignments),
	}
}

// ptRatio reports the share of part-time drivers, derived post hoc from
// weekly hours.
func (a *Auditor) ptRatio(assignments []model.Assignment) model.AuditFinding {
	pt := 0
	for _, asn := range assignments {
		if asn.DriverType == model.DriverPT {
			pt++
		}
	}
	ratio := 0.0
	if len(assignments) > 0 {
		ratio = float64(pt) / float64(len(assignments))
	}
	return model.AuditFinding{
		Check:   "kpi_pt_ratio",
		Status:  model.FindingPass,
		Details: []string{fmt.Sprintf("pt=%d total=%d ratio=%.2f", pt, len(assignments), ratio)},
	}
}

// blockMix reports the single/double/triple distribution and warns when too
// many tours sit in avoidable single-tour blocks.
func (a *Auditor) blockMix(assignments []model.Assignment) model.AuditFinding {
	mix := map[model.BlockType]int{}
	avoidable, total := 0, 0
	for _, asn := range assignments {
		for _, blk := range workingBlocks(asn) {
			mix[blk.Type()]++
			total++
			if blk.Type() == model.BlockSingle && blk.HasMultiTourAlternative {
				avoidable++
			}
		}
	}
	status := model.FindingPass
	if total > 0 && float64(avoidable)/float64(total) > badMixThreshold {
		status = model.FindingWarn
	}
	return model.AuditFinding{
		Check:  "kpi_block_mix",
		Status: status,
		Details: []string{fmt.Sprintf("single=%d double=%d triple=%d avoidable_singles=%d",
			mix[model.BlockSingle], mix[model.BlockDouble], mix[model.BlockTriple], avoidable)},
	}
}

// peakFleet compares the headcount against the concurrency lower bound. A
// headcount below peak fleet would be impossible, so it is reported for
// sanity only.
func (a *Auditor) peakFleet(tours []model.TourInstance, assignments []model.Assignment) model.AuditFinding {
	peak := blocks.PeakFleet(tours)
	status := model.FindingPass
	if len(assignments) < peak {
		status = model.FindingWarn
	}
	return model.AuditFinding{
		Check:   "kpi_peak_fleet",
		Status:  status,
		Details: []string{fmt.Sprintf("peak=%d drivers=%d", peak, len(assignments))},
	}
}
