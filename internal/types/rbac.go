package types

// UserRole is the fixed set of roles a tenant can assign. The owner role
// bypasses all permission checks for resources inside its own tenant;
// tenant isolation still applies before any role logic runs.
type UserRole string

const (
	UserRoleOwner   UserRole = "owner"
	UserRoleManager UserRole = "manager"
	UserRoleAgent   UserRole = "agent"
	UserRoleViewer  UserRole = "viewer"
)

func (r UserRole) Validate() bool {
	switch r {
	case UserRoleOwner, UserRoleManager, UserRoleAgent, UserRoleViewer:
		return true
	}
	return false
}

// Permission strings gate every mutating operation. The wildcard grants
// everything and is reserved for role definitions, never for per-employee
// overrides.
const (
	PermissionWildcard = "*"

	PermissionCreateContracts   = "create_contracts"
	PermissionViewContracts     = "view_contracts"
	PermissionUpdateContracts   = "update_contracts"
	PermissionCompleteContracts = "complete_contracts"
	PermissionCancelContracts   = "cancel_contracts"

	PermissionManageCustomers = "manage_customers"
	PermissionViewCustomers   = "view_customers"

	PermissionManageVehicles = "manage_vehicles"
	PermissionViewVehicles   = "view_vehicles"

	PermissionManageEmployees = "manage_employees"
	PermissionViewEmployees   = "view_employees"
)
