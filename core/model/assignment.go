package model

// DriverType distinguishes full-time from part-time drivers. The type is
// derived from the assigned weekly hours after a column is selected, never
// pre-assigned.
type DriverType string

const (
	DriverFTE DriverType = "FTE"
	DriverPT  DriverType = "PT"
)

// Assignment binds a selected roster column to a concrete driver identity.
type Assignment struct {
	DriverID   string              `json:"driver_id"`
	DriverType DriverType          `json:"driver_type"`
	ColumnKey  string              `json:"column_key"`
	Days       [DaysPerWeek]*Block `json:"-"`
	Covered    []string            `json:"covered_tour_ids"`
	WorkMin    int                 `json:"work_minutes"`
}

// FindingStatus is the verdict of a single audit check.
type FindingStatus string

const (
	FindingPass FindingStatus = "PASS"
	FindingWarn FindingStatus = "WARN"
	FindingFail FindingStatus = "FAIL"
)

// AuditFinding is the result of one audit check. Findings are append-only
// once attached to a finalized result.
type AuditFinding struct {
	Check      string        `json:"check_name"`
	Status     FindingStatus `json:"status"`
	Violations int           `json:"violation_count"`
	Details    []string      `json:"details,omitempty"`
}
