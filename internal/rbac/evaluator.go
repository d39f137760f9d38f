package rbac

import (
	"context"
	"time"

	"github.com/drivestack/drivestack/internal/cache"
	"github.com/drivestack/drivestack/internal/domain/employee"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/samber/lo"
)

const employeeCacheExpiry = 5 * time.Minute

// ResolutionStrategy tags which branch of the permission algorithm resolved
// the actor.
type ResolutionStrategy string

const (
	// ResolutionOwner grants everything inside the actor's own tenant
	ResolutionOwner ResolutionStrategy = "owner"

	// ResolutionEmployee matched an active employee record; grants are the
	// union of the role's static permissions and the employee's explicit
	// true overrides.
	ResolutionEmployee ResolutionStrategy = "employee"

	// ResolutionRoleFallback found no employee record and evaluated the
	// claim-level role alone. Degraded but non-blocking.
	ResolutionRoleFallback ResolutionStrategy = "role_fallback"
)

// Resolution is the per-actor outcome of the permission algorithm. It is
// computed once per request and then tested against each required
// permission.
type Resolution struct {
	Strategy ResolutionStrategy
	Role     types.UserRole

	// Employee is set only for the employee-matched strategy
	Employee *employee.Employee

	wildcard bool
	grants   map[string]struct{}
}

// Allows reports whether the resolution grants the given permission
func (r *Resolution) Allows(permission string) bool {
	if r.Strategy == ResolutionOwner || r.wildcard {
		return true
	}
	_, ok := r.grants[permission]
	return ok
}

// Evaluator resolves whether an actor may perform a guarded operation. The
// role table is immutable; employee records are looked up per actor within
// the tenant in context and cached briefly.
type Evaluator struct {
	roles        *RoleTable
	employeeRepo employee.Repository
	cache        cache.Cache
	logger       *logger.Logger
}

func NewEvaluator(
	roles *RoleTable,
	employeeRepo employee.Repository,
	c cache.Cache,
	log *logger.Logger,
) *Evaluator {
	return &Evaluator{
		roles:        roles,
		employeeRepo: employeeRepo,
		cache:        c,
		logger:       log,
	}
}

// Resolve runs the three-way resolution for the actor in context:
// owner bypass, employee match, then claim-role fallback. Missing
// authentication context is the only hard failure.
func (e *Evaluator) Resolve(ctx context.Context) (*Resolution, error) {
	userID := types.GetUserID(ctx)
	role := types.GetUserRole(ctx)
	if userID == "" || role == "" {
		return nil, ierr.NewError("no actor in context").
			WithHint("Authentication is required").
			Mark(ierr.ErrAuthentication)
	}

	if role == types.UserRoleOwner {
		return &Resolution{Strategy: ResolutionOwner, Role: role}, nil
	}

	emp, err := e.lookupEmployee(ctx, userID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if emp != nil {
		grants := e.roles.PermissionsFor(emp.Role)
		grants = append(grants, emp.GrantedOverrides()...)
		return &Resolution{
			Strategy: ResolutionEmployee,
			Role:     emp.Role,
			Employee: emp,
			wildcard: lo.Contains(grants, types.PermissionWildcard),
			grants:   toSet(grants),
		}, nil
	}

	// No active employee record linked to this user yet. Evaluate the
	// claim-level role alone instead of hard-failing the request.
	e.logger.Debugw("no employee record for actor, using role fallback",
		"user_id", userID,
		"role", role,
	)
	grants := e.roles.PermissionsFor(role)
	return &Resolution{
		Strategy: ResolutionRoleFallback,
		Role:     role,
		wildcard: lo.Contains(grants, types.PermissionWildcard),
		grants:   toSet(grants),
	}, nil
}

// HasPermission resolves the actor and tests a single permission
func (e *Evaluator) HasPermission(ctx context.Context, permission string) (*Resolution, error) {
	res, err := e.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if !res.Allows(permission) {
		return nil, ierr.NewError("missing permission").
			WithHintf("Operation requires the %s permission", permission).
			WithReportableDetails(map[string]any{
				"permission": permission,
				"role":       res.Role,
			}).
			Mark(ierr.ErrPermissionDenied)
	}
	return res, nil
}

// HasAnyPermission resolves the actor once and grants on the first
// satisfied candidate, in order.
func (e *Evaluator) HasAnyPermission(ctx context.Context, permissions []string) (*Resolution, error) {
	res, err := e.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	for _, permission := range permissions {
		if res.Allows(permission) {
			return res, nil
		}
	}
	return nil, ierr.NewError("missing permission").
		WithHint("Operation requires at least one of the listed permissions").
		WithReportableDetails(map[string]any{
			"permissions": permissions,
			"role":        res.Role,
		}).
		Mark(ierr.ErrPermissionDenied)
}

func (e *Evaluator) lookupEmployee(ctx context.Context, userID string) (*employee.Employee, error) {
	cacheKey := cache.GenerateKey(cache.PrefixEmployee, types.GetTenantID(ctx), userID)
	if e.cache != nil {
		if cached, found := e.cache.Get(ctx, cacheKey); found {
			if emp, ok := cached.(*employee.Employee); ok {
				return emp, nil
			}
		}
	}

	emp, err := e.employeeRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(ctx, cacheKey, emp, employeeCacheExpiry)
	}
	return emp, nil
}

func toSet(perms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
