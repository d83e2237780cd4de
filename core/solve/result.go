package solve

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"

	"github.com/DRNaser/shift-optimizer-sub007/core/budget"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// Result is the complete outcome of one solve. Assignments and findings are
// the only artifacts that cross into persistence; everything else is
// reporting.
type Result struct {
	Assignments []model.Assignment   `json:"assignments"`
	Findings    []model.AuditFinding `json:"findings"`
	Headcount   int                  `json:"headcount"`
	Stage1Cost  float64              `json:"stage1_cost"`
	QualityCost float64              `json:"quality_cost"`
	PeakFleet   int                  `json:"peak_fleet"`
	BlockMix    map[string]int       `json:"block_mix"`
	PoolSize    int                  `json:"pool_size"`
	Probes      int                  `json:"probes"`
	Repairs     int                  `json:"repairs"`
	Passed      bool                 `json:"passed"`
	Signature   string               `json:"solution_signature"`
	Phases      []budget.PhaseTiming `json:"phases"`
	Reasons     []string             `json:"reasons,omitempty"`
}

// signatureRecord is the canonical deterministic projection of a result.
// Timestamps, timings and any other non-deterministic field stay out so the
// hash is byte-identical across repeated runs with identical input and seed.
type signatureRecord struct {
	Seed      int64    `json:"seed"`
	Tours     []string `json:"tours"`
	Headcount int      `json:"headcount"`
	Columns   []string `json:"columns"`
	Quality   float64  `json:"quality"`
}

// Signature hashes the canonical solve outcome.
func Signature(seed int64, tourIDs []string, selected []*model.RosterColumn, quality float64) string {
	keys := make([]string, len(selected))
	for i, col := range selected {
		keys[i] = col.Key()
	}
	sort.Strings(keys)
	rec := signatureRecord{
		Seed:      seed,
		Tours:     tourIDs,
		Headcount: len(selected),
		Columns:   keys,
		Quality:   math.Round(quality*1e6) / 1e6,
	}
	raw, _ := json.Marshal(rec)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
