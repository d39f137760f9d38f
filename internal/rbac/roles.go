package rbac

import (
	"encoding/json"
	"os"

	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/samber/lo"
)

// RoleTable is an immutable role → permission mapping. It is injected into
// the evaluator rather than read from package state so tests can substitute
// alternate policies.
type RoleTable struct {
	grants map[types.UserRole][]string
}

// NewRoleTable builds a role table from a role → permission map. Every role
// in the fixed enum must be present.
func NewRoleTable(grants map[types.UserRole][]string) (*RoleTable, error) {
	required := []types.UserRole{
		types.UserRoleOwner,
		types.UserRoleManager,
		types.UserRoleAgent,
		types.UserRoleViewer,
	}
	for _, role := range required {
		if _, ok := grants[role]; !ok {
			return nil, ierr.NewError("role table is missing a role").
				WithReportableDetails(map[string]any{"role": role}).
				Mark(ierr.ErrValidation)
		}
	}
	for role := range grants {
		if !role.Validate() {
			return nil, ierr.NewError("role table contains an unknown role").
				WithReportableDetails(map[string]any{"role": role}).
				Mark(ierr.ErrValidation)
		}
	}

	copied := make(map[types.UserRole][]string, len(grants))
	for role, perms := range grants {
		copied[role] = append([]string(nil), perms...)
	}
	return &RoleTable{grants: copied}, nil
}

// DefaultRoleTable returns the built-in role policy
func DefaultRoleTable() *RoleTable {
	table, err := NewRoleTable(map[types.UserRole][]string{
		types.UserRoleOwner: {types.PermissionWildcard},
		types.UserRoleManager: {
			types.PermissionCreateContracts,
			types.PermissionViewContracts,
			types.PermissionUpdateContracts,
			types.PermissionCompleteContracts,
			types.PermissionCancelContracts,
			types.PermissionManageCustomers,
			types.PermissionViewCustomers,
			types.PermissionManageVehicles,
			types.PermissionViewVehicles,
			types.PermissionViewEmployees,
		},
		types.UserRoleAgent: {
			types.PermissionCreateContracts,
			types.PermissionViewContracts,
			types.PermissionCompleteContracts,
			types.PermissionViewCustomers,
			types.PermissionViewVehicles,
		},
		types.UserRoleViewer: {
			types.PermissionViewContracts,
			types.PermissionViewCustomers,
			types.PermissionViewVehicles,
			types.PermissionViewEmployees,
		},
	})
	if err != nil {
		panic(err)
	}
	return table
}

// LoadRoleTable reads a role table from a JSON file of the shape
// {"manager": ["create_contracts", ...], ...}. An empty path returns the
// built-in policy.
func LoadRoleTable(path string) (*RoleTable, error) {
	if path == "" {
		return DefaultRoleTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to read role config %s", path).
			Mark(ierr.ErrValidation)
	}

	var grants map[types.UserRole][]string
	if err := json.Unmarshal(data, &grants); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to parse role config %s", path).
			Mark(ierr.ErrValidation)
	}
	return NewRoleTable(grants)
}

// PermissionsFor returns the static permissions attached to a role. Unknown
// roles resolve to no permissions.
func (t *RoleTable) PermissionsFor(role types.UserRole) []string {
	return append([]string(nil), t.grants[role]...)
}

// HasWildcard reports whether the role's grant set is the wildcard
func (t *RoleTable) HasWildcard(role types.UserRole) bool {
	return lo.Contains(t.grants[role], types.PermissionWildcard)
}
