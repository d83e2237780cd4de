package audit

import (
	"testing"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

func blockOf(tours ...model.TourInstance) *model.Block {
	return &model.Block{Day: tours[0].Day, Tours: tours}
}

func assignmentOf(id string, blks ...*model.Block) model.Assignment {
	asn := model.Assignment{DriverID: id, DriverType: model.DriverFTE}
	for _, b := range blks {
		asn.Days[b.Day] = b
		asn.Covered = append(asn.Covered, b.TourIDs()...)
		asn.WorkMin += b.Work()
	}
	return asn
}

func TestAuditPasses(t *testing.T) {
	tours := []model.TourInstance{
		{ID: "a", Day: 0, Start: 360, End: 600},
		{ID: "b", Day: 1, Start: 360, End: 600},
	}
	asn := assignmentOf("d1",
		blockOf(tours[0]),
		blockOf(tours[1]),
	)
	rep := New(model.DefaultSolverConfig()).Run(tours, []model.Assignment{asn})
	if !rep.Passed {
		t.Fatalf("clean assignment must pass: %+v", rep.Findings)
	}
	for _, f := range rep.Findings {
		if f.Status == model.FindingFail {
			t.Fatalf("unexpected failure in %s: %v", f.Check, f.Details)
		}
	}
}

func TestAuditCoverageViolations(t *testing.T) {
	tours := []model.TourInstance{
		{ID: "a", Day: 0, Start: 360, End: 600},
		{ID: "b", Day: 1, Start: 360, End: 600},
	}
	// "a" twice, "b" missing, "x" not required.
	asn1 := assignmentOf("d1", blockOf(tours[0]))
	asn2 := assignmentOf("d2", blockOf(tours[0]))
	asn3 := assignmentOf("d3", blockOf(model.TourInstance{ID: "x", Day: 2, Start: 360, End: 600}))
	rep := New(model.DefaultSolverConfig()).Run(tours, []model.Assignment{asn1, asn2, asn3})
	if rep.Passed {
		t.Fatalf("broken coverage must fail the audit")
	}
	cov := findCheck(t, rep, "coverage")
	if cov.Status != model.FindingFail || cov.Violations != 3 {
		t.Fatalf("coverage finding %+v", cov)
	}
}

func TestAuditRestAcrossMidnight(t *testing.T) {
	// A block ending 06:00 on day 1 followed by a 08:00 start that same day
	// leaves 2h rest; naive per-day arithmetic would miss it.
	night := model.TourInstance{ID: "n", Day: 0, Start: 1320, End: 360, CrossesMidnight: true}
	morning := model.TourInstance{ID: "m", Day: 1, Start: 480, End: 900}
	asn := assignmentOf("d1", blockOf(night), blockOf(morning))

	rep := New(model.DefaultSolverConfig()).Run([]model.TourInstance{night, morning}, []model.Assignment{asn})
	if rep.Passed {
		t.Fatalf("2h rest after a night block must fail")
	}
	rest := findCheck(t, rep, "rest")
	if rest.Status != model.FindingFail || rest.Violations != 1 {
		t.Fatalf("rest finding %+v", rest)
	}
}

func TestAuditOverlapAcrossMidnight(t *testing.T) {
	night := model.TourInstance{ID: "n", Day: 0, Start: 1320, End: 360, CrossesMidnight: true}
	early := model.TourInstance{ID: "e", Day: 1, Start: 240, End: 600}
	asn := assignmentOf("d1", blockOf(night), blockOf(early))

	rep := New(model.DefaultSolverConfig()).Run([]model.TourInstance{night, early}, []model.Assignment{asn})
	overlap := findCheck(t, rep, "overlap")
	if overlap.Status != model.FindingFail {
		t.Fatalf("night block running until 06:00 overlaps a 04:00 start: %+v", overlap)
	}
}

func TestAuditSpanPolicy(t *testing.T) {
	cfg := model.DefaultSolverConfig()
	// 15h span with a 7h break: legal split shift.
	split := blockOf(
		model.TourInstance{ID: "a", Day: 0, Start: 300, End: 540},
		model.TourInstance{ID: "b", Day: 0, Start: 960, End: 1200},
	)
	asn := assignmentOf("d1", split)
	rep := New(cfg).Run([]model.TourInstance{split.Tours[0], split.Tours[1]}, []model.Assignment{asn})
	if f := findCheck(t, rep, "span"); f.Status != model.FindingPass {
		t.Fatalf("valid split shift flagged: %+v", f)
	}

	// 15h span with only a 2h break: over the regular cap, not a split.
	tight := blockOf(
		model.TourInstance{ID: "a", Day: 0, Start: 300, End: 1020},
		model.TourInstance{ID: "b", Day: 0, Start: 1140, End: 1200},
	)
	asn = assignmentOf("d1", tight)
	rep = New(cfg).Run([]model.TourInstance{tight.Tours[0], tight.Tours[1]}, []model.Assignment{asn})
	if f := findCheck(t, rep, "span"); f.Status != model.FindingFail {
		t.Fatalf("15h non-split span accepted: %+v", f)
	}
}

func TestBlockMixWarn(t *testing.T) {
	a := model.TourInstance{ID: "a", Day: 0, Start: 360, End: 600}
	b := model.TourInstance{ID: "b", Day: 1, Start: 360, End: 600}
	blkA := blockOf(a)
	blkA.HasMultiTourAlternative = true
	blkB := blockOf(b)
	blkB.HasMultiTourAlternative = true
	asn := assignmentOf("d1", blkA, blkB)

	rep := New(model.DefaultSolverConfig()).Run([]model.TourInstance{a, b}, []model.Assignment{asn})
	mix := findCheck(t, rep, "kpi_block_mix")
	if mix.Status != model.FindingWarn {
		t.Fatalf("100%% avoidable singles must warn: %+v", mix)
	}
	if !rep.Passed {
		t.Fatalf("a KPI warning must not block release")
	}
}

func TestPeakFleetKPI(t *testing.T) {
	a := model.TourInstance{ID: "a", Day: 0, Start: 360, End: 600}
	b := model.TourInstance{ID: "b", Day: 0, Start: 360, End: 600}
	// One driver for two concurrent tours is impossible; the KPI warns.
	asn := assignmentOf("d1", blockOf(a))
	rep := New(model.DefaultSolverConfig()).Run([]model.TourInstance{a, b}, []model.Assignment{asn})
	if f := findCheck(t, rep, "kpi_peak_fleet"); f.Status != model.FindingWarn {
		t.Fatalf("headcount below peak must warn: %+v", f)
	}
}

func findCheck(t *testing.T, rep Report, name string) model.AuditFinding {
	t.Helper()
	for _, f := range rep.Findings {
		if f.Check == name {
			return f
		}
	}
	t.Fatalf("check %s missing", name)
	return model.AuditFinding{}
}
