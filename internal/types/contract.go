package types

// ContractStatus is the lifecycle status of a rental contract.
// Transitions are one-directional: active contracts may complete or cancel,
// completed and cancelled are terminal. Extension keeps the contract active.
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

func (s ContractStatus) Validate() bool {
	switch s {
	case ContractStatusActive, ContractStatusCompleted, ContractStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further lifecycle transition is allowed
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusCompleted || s == ContractStatusCancelled
}

// ContractEvent is a lifecycle event applied to a contract through the
// state machine. Every mutation of an existing contract maps to exactly
// one event.
type ContractEvent string

const (
	ContractEventComplete ContractEvent = "complete"
	ContractEventCancel   ContractEvent = "cancel"
	ContractEventExtend   ContractEvent = "extend"
)

// ContractFilter represents filters for listing contracts
type ContractFilter struct {
	QueryFilter

	CustomerID     string          `json:"customer_id,omitempty" form:"customer_id"`
	VehicleID      string          `json:"vehicle_id,omitempty" form:"vehicle_id"`
	ContractStatus *ContractStatus `json:"contract_status,omitempty" form:"contract_status"`
}
