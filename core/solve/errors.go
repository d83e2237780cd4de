package solve

import (
	"fmt"
	"strings"
)

// Reason codes attached to a solve result. They travel with the result so
// the caller can tell a clean optimum from a budget-limited or repaired one.
const (
	ReasonBudgetOverrun      = "BUDGET_OVERRUN"
	ReasonVerificationFailed = "VERIFICATION_FAILED"
	ReasonSolverTimeout      = "SOLVER_TIMEOUT"
	ReasonRepairExhausted    = "REPAIR_EXHAUSTED"
	ReasonBadBlockMix        = "BAD_BLOCK_MIX"
	ReasonInfeasibleInput    = "INFEASIBLE_INPUT"
)

// InfeasibleInputError reports tours that no column can cover, or
// contradictory input detected before solve time. The offending ids are
// carried explicitly, never silently dropped.
type InfeasibleInputError struct {
	TourIDs []string
}

func (e *InfeasibleInputError) Error() string {
	return fmt.Sprintf("infeasible input: no coverage possible for tours [%s]", strings.Join(e.TourIDs, ", "))
}

// Reason returns the reason code for the aborted solve.
func (e *InfeasibleInputError) Reason() string { return ReasonInfeasibleInput }

// VerificationError is fatal for a solve attempt: the selection failed the
// independent coverage check and must not be used as a result.
type VerificationError struct {
	Errors []string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed: %s", strings.Join(e.Errors, "; "))
}

// Reason returns the reason code for the aborted solve.
func (e *VerificationError) Reason() string { return ReasonVerificationFailed }
