package ledger

import (
	"strings"
)

// FailureKind classifies why a claim transaction did not go through.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureAlreadyClaimed
	FailurePeriodLimitExceeded
	FailureInsufficientGas
	FailureUserRejected
	// FailureAmbiguous means the wallet reported an error that may have
	// happened after the transaction was accepted; the outcome must be
	// re-checked against the ledger.
	FailureAmbiguous
)

func (k FailureKind) String() string {
	switch k {
	case FailureAlreadyClaimed:
		return "already claimed"
	case FailurePeriodLimitExceeded:
		return "period limit exceeded"
	case FailureInsufficientGas:
		return "insufficient gas"
	case FailureUserRejected:
		return "rejected by user"
	case FailureAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// ClassifyClaimError maps a submission error to a FailureKind by matching the
// Move abort codes and wallet messages it is known to produce.
func ClassifyClaimError(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}
	msg := err.Error()

	switch {
	case strings.Contains(msg, "EAlreadyClaimedToday"),
		strings.Contains(msg, "Abort(1)"),
		strings.Contains(msg, "), 1)"),
		strings.Contains(msg, "MoveAbort") && strings.Contains(msg, ", 1)"),
		strings.Contains(msg, "Dry run failed") && strings.Contains(msg, "1)"):
		return FailureAlreadyClaimed
	case strings.Contains(msg, "EGlobalPeriodLimitExceeded"),
		strings.Contains(msg, "Abort(4)"):
		return FailurePeriodLimitExceeded
	case strings.Contains(msg, "Insufficient gas"),
		strings.Contains(msg, "InsufficientGas"):
		return FailureInsufficientGas
	case strings.Contains(msg, "User rejected"),
		strings.Contains(msg, "user rejected"),
		strings.Contains(msg, "cancelled"):
		return FailureUserRejected
	case strings.Contains(msg, "undefined"),
		strings.Contains(msg, "digest"),
		strings.Contains(msg, "Cannot read properties"):
		return FailureAmbiguous
	default:
		return FailureUnknown
	}
}
