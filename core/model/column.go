package model

import (
	"fmt"
	"sort"
	"strings"
)

// RosterColumn is one candidate weekly schedule for a single anonymous driver
// slot. Its identity is the exact set of covered tours; driver labels are
// applied only after the master solver selects a column.
type RosterColumn struct {
	Days        [DaysPerWeek]*Block
	CostStage1  float64
	CostQuality float64
	Covered     []string
	Slack       bool
}

// NewColumn builds a column from day-indexed blocks and recomputes the
// covered tour set.
func NewColumn(days [DaysPerWeek]*Block) *RosterColumn {
	c := &RosterColumn{Days: days, CostStage1: 1}
	var ids []string
	for _, b := range days {
		if b != nil {
			ids = append(ids, b.TourIDs()...)
		}
	}
	sort.Strings(ids)
	c.Covered = ids
	return c
}

// NewSlackColumn builds an artificial column covering exactly one tour. Slack
// columns keep the headcount model feasible when no real column covers a
// tour; a selected slack column marks its tour as uncoverable.
func NewSlackColumn(tourID string, cost float64) *RosterColumn {
	return &RosterColumn{CostStage1: cost, Covered: []string{tourID}, Slack: true}
}

// Key is the canonical identity of a column: day-indexed block keys, or the
// covered tour set for slack columns.
func (c *RosterColumn) Key() string {
	if c.Slack {
		return "slack|" + strings.Join(c.Covered, "+")
	}
	parts := make([]string, 0, DaysPerWeek)
	for d, b := range c.Days {
		if b != nil {
			parts = append(parts, fmt.Sprintf("%d:%s", d, b.Key()))
		}
	}
	return strings.Join(parts, "|")
}

// TourCount returns the number of tours the column covers.
func (c *RosterColumn) TourCount() int { return len(c.Covered) }

// WorkMinutes returns the column's total driving minutes over the week.
func (c *RosterColumn) WorkMinutes() int {
	sum := 0
	for _, b := range c.Days {
		if b != nil {
			sum += b.Work()
		}
	}
	return sum
}

// DayCount returns the number of working days in the column.
func (c *RosterColumn) DayCount() int {
	n := 0
	for _, b := range c.Days {
		if b != nil {
			n++
		}
	}
	return n
}

// ShortRoster reports whether the column is a fragmentation candidate for
// the merge and collapse repairs.
func (c *RosterColumn) ShortRoster() bool { return c.TourCount() <= 3 }

// Covers reports whether the column covers the given tour id.
func (c *RosterColumn) Covers(id string) bool {
	i := sort.SearchStrings(c.Covered, id)
	return i < len(c.Covered) && c.Covered[i] == id
}

// SortColumns orders columns by key. The master solver indexes columns in
// this order so repeated runs see an identical model.
func SortColumns(cols []*RosterColumn) {
	sort.Slice(cols, func(i, j int) bool { return cols[i].Key() < cols[j].Key() })
}
