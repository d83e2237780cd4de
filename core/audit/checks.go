package audit

import (
	"fmt"
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

func finding(name string, violations int, details []string) model.AuditFinding {
	status := model.FindingPass
	if violations > 0 {
		status = model.FindingFail
	}
	if len(details) > maxDetails {
		details = details[:maxDetails]
	}
	return model.AuditFinding{Check: name, Status: status, Violations: violations, Details: details}
}

// checkCoverage verifies every tour instance has exactly one assignment.
// Coverage is per instance, never per template count.
func (a *Auditor) checkCoverage(tours []model.TourInstance, assignments []model.Assignment) model.AuditFinding {
	counts := make(map[string]int, len(tours))
	for _, asn := range assignments {
		for _, id := range asn.Covered {
			counts[id]++
		}
	}
	violations := 0
	var details []string
	ids := model.TourIDs(tours)
	for _, id := range ids {
		switch counts[id] {
		case 1:
		case 0:
			violations++
			details = append(details, fmt.Sprintf("%s uncovered", id))
		default:
			violations++
			details = append(details, fmt.Sprintf("%s covered %dx", id, counts[id]))
		}
	}
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	var extra []string
	for id := range counts {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		violations++
		details = append(details, fmt.Sprintf("%s assigned but not required", id))
	}
	return finding("coverage", violations, details)
}

// checkOverlap verifies no driver has two concurrently active blocks.
// Blocks are compared on absolute minute-of-week ranges so a cross-midnight
// block correctly collides with the next calendar day.
func (a *Auditor) checkOverlap(assignments []model.Assignment) model.AuditFinding {
	violations := 0
	var details []string
	for _, asn := range assignments {
		blocks := workingBlocks(asn)
		for i := 1; i < len(blocks); i++ {
			if blocks[i].StartAbs() < blocks[i-1].EndAbs() {
				violations++
				details = append(details, fmt.Sprintf("driver %s days %d/%d", asn.DriverID, blocks[i-1].Day, blocks[i].Day))
			}
		}
	}
	return finding("overlap", violations, details)
}

// checkRest verifies the minimum rest between consecutive blocks of the same
// driver on the absolute timeline, so an overnight block's end lands on the
// following calendar day instead of producing a bogus positive gap.
func (a *Auditor) checkRest(assignments []model.Assignment) model.AuditFinding {
	violations := 0
	var details []string
	for _, asn := range assignments {
		blocks := workingBlocks(asn)
		for i := 1; i < len(blocks); i++ {
			gap := blocks[i].StartAbs() - blocks[i-1].EndAbs()
			if gap < a.cfg.MinRest {
				violations++
				details = append(details, fmt.Sprintf("driver %s day %d rest %dmin", asn.DriverID, blocks[i].Day, gap))
			}
		}
	}
	return finding("rest", violations, details)
}

// checkSpan verifies the block span policy: the regular maximum, or the
// split maximum when the block carries at least the minimum break.
func (a *Auditor) checkSpan(assignments []model.Assignment) model.AuditFinding {
	violations := 0
	var details []string
	for _, asn := range assignments {
		for _, blk := range workingBlocks(asn) {
			span := blk.Span()
			limit := a.cfg.MaxSpan
			if blk.IsSplit(a.cfg.SplitBreak) {
				limit = a.cfg.MaxSplitSpan
			}
			if span > limit {
				violations++
				details = append(details, fmt.Sprintf("driver %s day %d span %dmin", asn.DriverID, blk.Day, span))
			}
		}
	}
	return finding("span", violations, details)
}

// workingBlocks returns the driver's blocks in day order.
func workingBlocks(asn model.Assignment) []*model.Block {
	var out []*model.Block
	for d := 0; d < model.DaysPerWeek; d++ {
		if asn.Days[d] != nil {
			out = append(out, asn.Days[d])
		}
	}
	return out
}
