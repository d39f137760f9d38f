package employee

import (
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// Employee links a user account to a tenant with a role, an optional
// per-employee permission override map, and aggregate performance counters.
type Employee struct {
	// ID is the unique identifier for the employee
	ID string `db:"id" json:"id"`

	// UserID links the employee to a user account
	UserID string `db:"user_id" json:"user_id"`

	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`

	Role types.UserRole `db:"role" json:"role"`

	EmployeeStatus types.EmployeeStatus `db:"employee_status" json:"employee_status"`

	// Permissions overrides individual permissions on top of the role
	// grants. Only explicit-true keys extend the grant set; false keys are
	// kept for audit but never subtract role permissions.
	Permissions map[string]bool `db:"permissions" json:"permissions"`

	// Aggregate performance counters
	ContractsCompleted int             `db:"contracts_completed" json:"contracts_completed"`
	RevenueGenerated   decimal.Decimal `db:"revenue_generated" json:"revenue_generated"`

	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

func (e *Employee) Validate() error {
	if e.UserID == "" {
		return ierr.NewError("user id is required").
			WithHint("Employee must link to a user account").
			Mark(ierr.ErrValidation)
	}
	if !e.Role.Validate() {
		return ierr.NewError("invalid role").
			WithHintf("Unknown role %s", e.Role).
			Mark(ierr.ErrValidation)
	}
	if !e.EmployeeStatus.Validate() {
		return ierr.NewError("invalid employee status").
			WithHintf("Unknown employee status %s", e.EmployeeStatus).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GrantedOverrides returns the explicit-true override permissions
func (e *Employee) GrantedOverrides() []string {
	grants := make([]string, 0, len(e.Permissions))
	for perm, granted := range e.Permissions {
		if granted {
			grants = append(grants, perm)
		}
	}
	return grants
}
