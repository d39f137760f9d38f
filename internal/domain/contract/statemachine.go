package contract

import (
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
)

// transitions is the closed lifecycle table. A (status, event) pair absent
// from this table is an invalid transition, never a silent no-op.
var transitions = map[types.ContractStatus]map[types.ContractEvent]types.ContractStatus{
	types.ContractStatusActive: {
		types.ContractEventComplete: types.ContractStatusCompleted,
		types.ContractEventCancel:   types.ContractStatusCancelled,
		// Extension is a data mutation, not a state change; it stays active.
		types.ContractEventExtend: types.ContractStatusActive,
	},
}

// Transition resolves the target status for applying ev to current.
// Disallowed pairs return a terminal invalid-transition error naming the
// current and requested states so the caller can surface both.
func Transition(current types.ContractStatus, ev types.ContractEvent) (types.ContractStatus, error) {
	if next, ok := transitions[current][ev]; ok {
		return next, nil
	}
	return current, ierr.NewError("contract lifecycle transition not allowed").
		WithHintf("Cannot %s a %s contract", ev, current).
		WithReportableDetails(map[string]any{
			"current_status": current,
			"event":          ev,
		}).
		Mark(ierr.ErrInvalidTransition)
}

// CanTransition reports whether applying ev to current is allowed
func CanTransition(current types.ContractStatus, ev types.ContractEvent) bool {
	_, ok := transitions[current][ev]
	return ok
}
