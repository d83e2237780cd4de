package blocks

import (
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// PeakFleet computes the maximum number of simultaneously active tours over
// the week with a sweep line on the absolute minute-of-week timeline. The
// value is independent of any driver assignment and serves as a sanity bound
// for the audit, not as a hard constraint.
func PeakFleet(tours []model.TourInstance) int {
	type event struct {
		at    int
		delta int
	}
	events := make([]event, 0, 2*len(tours))
	for _, t := range tours {
		events = append(events, event{t.StartAbs(), 1}, event{t.EndAbs(), -1})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		// Ends release capacity before starts claim it.
		return events[i].delta < events[j].delta
	})
	peak, cur := 0, 0
	for _, e := range events {
		cur += e.delta
		if cur > peak {
			peak = cur
		}
	}
	return peak
}
