// Package tenancy enforces tenant isolation for every entity read or
// written. The guard runs before any role logic: even the owner bypass in
// the permission evaluator only applies after the tenant match holds.
package tenancy

import (
	"context"

	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
)

// AssertContext verifies that the request carries an authenticated actor
// bound to a tenant.
func AssertContext(ctx context.Context) error {
	if types.GetTenantID(ctx) == "" {
		return ierr.NewError("no tenant in context").
			WithHint("Authentication is required").
			Mark(ierr.ErrAuthentication)
	}
	if types.GetUserID(ctx) == "" {
		return ierr.NewError("no user in context").
			WithHint("Authentication is required").
			Mark(ierr.ErrAuthentication)
	}
	return nil
}

// AssertOwnership verifies that a resource belongs to the actor's tenant.
// A mismatch is an authorization failure naming the resource, never
// silently degraded.
func AssertOwnership(ctx context.Context, resourceTenantID, resourceType, resourceID string) error {
	if err := AssertContext(ctx); err != nil {
		return err
	}
	if resourceTenantID != types.GetTenantID(ctx) {
		return ierr.NewError("resource belongs to another tenant").
			WithHintf("Access to this %s is denied", resourceType).
			WithReportableDetails(map[string]any{
				"resource_type": resourceType,
				"resource_id":   resourceID,
			}).
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}
