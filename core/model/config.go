package model

import "fmt"

// SolverConfig carries every tunable of a solve. It is immutable once
// constructed and passed explicitly into each component constructor; there is
// no process-wide configuration state.
type SolverConfig struct {
	// Seed fixes every pseudo-random choice of the solve.
	Seed int64 `json:"seed"`
	// TimeBudgetSeconds is the wall-clock ceiling for the whole solve.
	TimeBudgetSeconds float64 `json:"time_budget_seconds"`

	// Scheduling rules, all in minutes.
	MinGap        int `json:"min_gap_minutes"`
	MaxSpan       int `json:"max_span_minutes"`
	MaxSplitSpan  int `json:"max_split_span_minutes"`
	SplitBreak    int `json:"split_break_minutes"`
	MinRest       int `json:"min_rest_minutes"`
	MaxWeeklyWork int `json:"max_weekly_work_minutes"`
	MinWeeklyWork int `json:"min_weekly_work_minutes"`
	// FTEMinutes is the weekly threshold above which a driver counts as
	// full-time when driver types are derived post solve.
	FTEMinutes int `json:"fte_minutes"`

	// Column pool shape.
	MaxColumnsPerTour int `json:"max_columns_per_tour"`
	MaxPoolSize       int `json:"max_pool_size"`

	// D-Search stepping and repair budgets.
	CoarseStep   int `json:"coarse_step"`
	RepairRounds int `json:"repair_rounds"`
	MergeRounds  int `json:"merge_rounds"`

	// Quality cost weights.
	SingletonPenalty        float64 `json:"singleton_penalty"`
	UnderfillPenaltyPerHour float64 `json:"underfill_penalty_per_hour"`
	DensityBonus            float64 `json:"density_bonus"`
	SlackCost               float64 `json:"slack_cost"`

	// Feature flags for the optional repair heuristics.
	EnableMerge    bool `json:"enable_merge"`
	EnableCollapse bool `json:"enable_collapse"`
	EnableKillOne  bool `json:"enable_kill_one"`

	// Solver search limits.
	MaxNodes int `json:"max_nodes"`
}

// DefaultSolverConfig returns a config with every default applied.
func DefaultSolverConfig() SolverConfig {
	cfg := SolverConfig{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults applies sane defaults to unset fields.
func (c *SolverConfig) SetDefaults() {
	if c.TimeBudgetSeconds == 0 {
		c.TimeBudgetSeconds = 30
	}
	if c.MinGap == 0 {
		c.MinGap = 30
	}
	if c.MaxSpan == 0 {
		c.MaxSpan = 14 * 60
	}
	if c.MaxSplitSpan == 0 {
		c.MaxSplitSpan = 16 * 60
	}
	if c.SplitBreak == 0 {
		c.SplitBreak = 360
	}
	if c.MinRest == 0 {
		c.MinRest = 11 * 60
	}
	if c.MaxWeeklyWork == 0 {
		c.MaxWeeklyWork = 56 * 60
	}
	if c.MinWeeklyWork == 0 {
		c.MinWeeklyWork = 30 * 60
	}
	if c.FTEMinutes == 0 {
		c.FTEMinutes = 30 * 60
	}
	if c.MaxColumnsPerTour == 0 {
		c.MaxColumnsPerTour = 40
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 6000
	}
	if c.CoarseStep == 0 {
		c.CoarseStep = 10
	}
	if c.RepairRounds == 0 {
		c.RepairRounds = 2
	}
	if c.MergeRounds == 0 {
		c.MergeRounds = 3
	}
	if c.SingletonPenalty == 0 {
		c.SingletonPenalty = 6
	}
	if c.UnderfillPenaltyPerHour == 0 {
		c.UnderfillPenaltyPerHour = 0.5
	}
	if c.DensityBonus == 0 {
		c.DensityBonus = 0.8
	}
	if c.SlackCost == 0 {
		c.SlackCost = 1000
	}
	if c.MaxNodes == 0 {
		c.MaxNodes = 200000
	}
	if !c.EnableMerge && !c.EnableCollapse && !c.EnableKillOne {
		c.EnableMerge = true
		c.EnableCollapse = true
		c.EnableKillOne = true
	}
}

// Validate checks the config for contradictions.
func (c SolverConfig) Validate() error {
	if c.TimeBudgetSeconds <= 0 {
		return fmt.Errorf("time_budget_seconds must be positive")
	}
	if c.MinGap < 0 || c.MinRest < 0 {
		return fmt.Errorf("gap and rest minutes must not be negative")
	}
	if c.MaxSpan <= 0 || c.MaxSplitSpan < c.MaxSpan {
		return fmt.Errorf("max_split_span_minutes must be >= max_span_minutes > 0")
	}
	if c.MaxColumnsPerTour <= 0 || c.MaxPoolSize <= 0 {
		return fmt.Errorf("pool limits must be positive")
	}
	if c.CoarseStep <= 0 || c.RepairRounds <= 0 {
		return fmt.Errorf("search steps must be positive")
	}
	return nil
}

// QualityCost computes the fragmentation cost of a column under the
// configured weights: a penalty per single-tour day that had a denser
// alternative, an underfill penalty below the weekly minimum and a density
// bonus per covered tour.
func (c SolverConfig) QualityCost(col *RosterColumn) float64 {
	if col.Slack {
		return c.SlackCost
	}
	cost := 0.0
	for _, b := range col.Days {
		if b == nil {
			continue
		}
		if b.Type() == BlockSingle && b.HasMultiTourAlternative {
			cost += c.SingletonPenalty
		}
	}
	if work := col.WorkMinutes(); work < c.MinWeeklyWork {
		cost += c.UnderfillPenaltyPerHour * float64(c.MinWeeklyWork-work) / 60
	}
	cost -= c.DensityBonus * float64(col.TourCount())
	return cost
}
