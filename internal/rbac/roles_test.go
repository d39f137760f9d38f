package rbac_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drivestack/drivestack/internal/rbac"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoleTable(t *testing.T) {
	table := rbac.DefaultRoleTable()

	assert.True(t, table.HasWildcard(types.UserRoleOwner))
	assert.Contains(t, table.PermissionsFor(types.UserRoleManager), types.PermissionCancelContracts)
	assert.Contains(t, table.PermissionsFor(types.UserRoleAgent), types.PermissionCompleteContracts)
	assert.NotContains(t, table.PermissionsFor(types.UserRoleAgent), types.PermissionManageEmployees)
	assert.NotContains(t, table.PermissionsFor(types.UserRoleViewer), types.PermissionCreateContracts)
}

func TestNewRoleTableRequiresAllRoles(t *testing.T) {
	_, err := rbac.NewRoleTable(map[types.UserRole][]string{
		types.UserRoleOwner: {types.PermissionWildcard},
	})
	assert.Error(t, err)
}

func TestNewRoleTableRejectsUnknownRole(t *testing.T) {
	_, err := rbac.NewRoleTable(map[types.UserRole][]string{
		types.UserRoleOwner:       {types.PermissionWildcard},
		types.UserRoleManager:     {},
		types.UserRoleAgent:       {},
		types.UserRoleViewer:      {},
		types.UserRole("admiral"): {},
	})
	assert.Error(t, err)
}

func TestLoadRoleTable(t *testing.T) {
	t.Run("empty path uses built-in policy", func(t *testing.T) {
		table, err := rbac.LoadRoleTable("")
		require.NoError(t, err)
		assert.True(t, table.HasWildcard(types.UserRoleOwner))
	})

	t.Run("reads json policy file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roles.json")
		policy := `{
			"owner": ["*"],
			"manager": ["view_contracts", "complete_contracts"],
			"agent": ["view_contracts"],
			"viewer": []
		}`
		require.NoError(t, os.WriteFile(path, []byte(policy), 0o600))

		table, err := rbac.LoadRoleTable(path)
		require.NoError(t, err)
		assert.Contains(t, table.PermissionsFor(types.UserRoleManager), types.PermissionCompleteContracts)
		assert.Empty(t, table.PermissionsFor(types.UserRoleViewer))
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := rbac.LoadRoleTable("/nonexistent/roles.json")
		assert.Error(t, err)
	})
}
