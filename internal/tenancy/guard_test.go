package tenancy_test

import (
	"context"
	"testing"

	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/tenancy"
	"github.com/drivestack/drivestack/internal/testutil"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestAssertContext(t *testing.T) {
	ctx := testutil.SetupContextWithActor("tenant-1", "user-1", types.UserRoleAgent)
	assert.NoError(t, tenancy.AssertContext(ctx))

	err := tenancy.AssertContext(context.Background())
	assert.Error(t, err)
	assert.True(t, ierr.IsAuthentication(err))

	noUser := types.SetTenantID(context.Background(), "tenant-1")
	err = tenancy.AssertContext(noUser)
	assert.Error(t, err)
	assert.True(t, ierr.IsAuthentication(err))
}

func TestAssertOwnership(t *testing.T) {
	ctx := testutil.SetupContextWithActor("tenant-1", "user-1", types.UserRoleOwner)

	assert.NoError(t, tenancy.AssertOwnership(ctx, "tenant-1", "contract", "contract-1"))

	// Cross-tenant access is denied regardless of role, owner included
	err := tenancy.AssertOwnership(ctx, "tenant-2", "contract", "contract-1")
	assert.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
}
