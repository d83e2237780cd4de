package model

import "sort"

const (
	// MinutesPerDay is the length of one calendar day in minutes.
	MinutesPerDay = 1440
	// DaysPerWeek is the planning horizon of a roster.
	DaysPerWeek = 7
)

// TourInstance is one required driver-slot for a tour on a given day. A tour
// template with count=N is expanded into N instances upstream; instances are
// read-only inputs for a solve.
type TourInstance struct {
	ID              string `json:"id"`
	Day             int    `json:"day"`
	Start           int    `json:"start"`
	End             int    `json:"end"`
	CrossesMidnight bool   `json:"crosses_midnight"`
	Duration        int    `json:"duration_min"`
	Depot           string `json:"depot,omitempty"`
	Skill           string `json:"skill,omitempty"`
}

// StartAbs returns the tour start as an absolute minute-of-week.
func (t TourInstance) StartAbs() int {
	return t.Day*MinutesPerDay + t.Start
}

// EndAbs returns the tour end as an absolute minute-of-week. The end of a
// cross-midnight tour lands on the following calendar day.
func (t TourInstance) EndAbs() int {
	end := t.Day*MinutesPerDay + t.End
	if t.CrossesMidnight {
		end += MinutesPerDay
	}
	return end
}

// WorkMinutes returns the driving time of the tour. Duration wins when set,
// otherwise it is derived from the absolute start/end positions.
func (t TourInstance) WorkMinutes() int {
	if t.Duration > 0 {
		return t.Duration
	}
	return t.EndAbs() - t.StartAbs()
}

// Overlaps reports whether two tours are concurrently active on the absolute
// minute-of-week timeline.
func (t TourInstance) Overlaps(o TourInstance) bool {
	return t.StartAbs() < o.EndAbs() && o.StartAbs() < t.EndAbs()
}

// SortTours orders tours by day, then start time, then id. Every component
// that feeds the solver or a heuristic iterates tours in this order so no
// hidden map-order dependency exists.
func SortTours(tours []TourInstance) {
	sort.Slice(tours, func(i, j int) bool {
		if tours[i].Day != tours[j].Day {
			return tours[i].Day < tours[j].Day
		}
		if tours[i].Start != tours[j].Start {
			return tours[i].Start < tours[j].Start
		}
		return tours[i].ID < tours[j].ID
	})
}

// TourIDs returns the sorted ids of the given tours.
func TourIDs(tours []TourInstance) []string {
	ids := make([]string, len(tours))
	for i, t := range tours {
		ids[i] = t.ID
	}
	sort.Strings(ids)
	return ids
}
