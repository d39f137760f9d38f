package rbac_test

import (
	"context"
	"testing"
	"time"

	"github.com/drivestack/drivestack/internal/cache"
	"github.com/drivestack/drivestack/internal/config"
	"github.com/drivestack/drivestack/internal/domain/employee"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/rbac"
	"github.com/drivestack/drivestack/internal/testutil"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/stretchr/testify/suite"
)

type EvaluatorSuite struct {
	suite.Suite
	employees *testutil.InMemoryEmployeeStore
	evaluator *rbac.Evaluator
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorSuite))
}

func (s *EvaluatorSuite) SetupTest() {
	log, err := logger.NewLogger(config.GetDefaultConfig())
	s.Require().NoError(err)

	s.employees = testutil.NewInMemoryEmployeeStore()
	s.evaluator = rbac.NewEvaluator(
		rbac.DefaultRoleTable(),
		s.employees,
		cache.NewInMemoryCache(),
		log,
	)
}

func (s *EvaluatorSuite) seedEmployee(ctx context.Context, userID string, role types.UserRole, overrides map[string]bool) *employee.Employee {
	emp := &employee.Employee{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EMPLOYEE),
		UserID:         userID,
		Name:           "Test Employee",
		Role:           role,
		EmployeeStatus: types.EmployeeStatusActive,
		Permissions:    overrides,
		BaseModel: types.BaseModel{
			TenantID:  types.GetTenantID(ctx),
			Status:    types.StatusPublished,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		},
	}
	s.Require().NoError(s.employees.Create(ctx, emp))
	return emp
}

func (s *EvaluatorSuite) TestOwnerBypassesEverything() {
	ctx := testutil.SetupContextWithActor("tenant-1", "user-owner", types.UserRoleOwner)

	res, err := s.evaluator.HasPermission(ctx, types.PermissionManageEmployees)
	s.NoError(err)
	s.Equal(rbac.ResolutionOwner, res.Strategy)
	s.Nil(res.Employee)
}

func (s *EvaluatorSuite) TestEmployeeMatchUnionsRoleAndOverrides() {
	ctx := testutil.SetupContextWithActor("tenant-1", "user-agent", types.UserRoleAgent)
	s.seedEmployee(ctx, "user-agent", types.UserRoleAgent, map[string]bool{
		types.PermissionCancelContracts: true,
		types.PermissionManageVehicles:  false,
	})

	// Role grant
	res, err := s.evaluator.HasPermission(ctx, types.PermissionCompleteContracts)
	s.NoError(err)
	s.Equal(rbac.ResolutionEmployee, res.Strategy)
	s.NotNil(res.Employee)

	// Explicit-true override extends the role set
	_, err = s.evaluator.HasPermission(ctx, types.PermissionCancelContracts)
	s.NoError(err)

	// Explicit-false key never grants
	_, err = s.evaluator.HasPermission(ctx, types.PermissionManageVehicles)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *EvaluatorSuite) TestRoleFallbackWithoutEmployeeRecord() {
	ctx := testutil.SetupContextWithActor("tenant-1", "user-unlinked", types.UserRoleManager)

	res, err := s.evaluator.HasPermission(ctx, types.PermissionManageVehicles)
	s.NoError(err)
	s.Equal(rbac.ResolutionRoleFallback, res.Strategy)
	s.Nil(res.Employee)

	// Fallback carries no overrides, so out-of-role permissions are denied
	_, err = s.evaluator.HasPermission(ctx, types.PermissionManageEmployees)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *EvaluatorSuite) TestTerminatedEmployeeFallsBackToClaimRole() {
	ctx := testutil.SetupContextWithActor("tenant-1", "user-gone", types.UserRoleViewer)
	emp := s.seedEmployee(ctx, "user-gone", types.UserRoleManager, nil)
	emp.EmployeeStatus = types.EmployeeStatusTerminated
	s.Require().NoError(s.employees.Update(ctx, emp))

	res, err := s.evaluator.Resolve(ctx)
	s.NoError(err)
	s.Equal(rbac.ResolutionRoleFallback, res.Strategy)
	s.False(res.Allows(types.PermissionCreateContracts))
	s.True(res.Allows(types.PermissionViewContracts))
}

func (s *EvaluatorSuite) TestEmployeeLookupIsTenantScoped() {
	otherTenant := testutil.SetupContextWithActor("tenant-2", "user-agent", types.UserRoleViewer)
	s.seedEmployee(
		testutil.SetupContextWithActor("tenant-1", "user-agent", types.UserRoleAgent),
		"user-agent", types.UserRoleAgent, nil,
	)

	// The employee record lives in tenant-1 and must not resolve for an
	// actor bound to tenant-2.
	res, err := s.evaluator.Resolve(otherTenant)
	s.NoError(err)
	s.Equal(rbac.ResolutionRoleFallback, res.Strategy)
}

func (s *EvaluatorSuite) TestHasAnyPermissionShortCircuits() {
	ctx := testutil.SetupContextWithActor("tenant-1", "user-viewer", types.UserRoleViewer)

	res, err := s.evaluator.HasAnyPermission(ctx, []string{
		types.PermissionManageEmployees,
		types.PermissionViewContracts,
	})
	s.NoError(err)
	s.Equal(rbac.ResolutionRoleFallback, res.Strategy)

	_, err = s.evaluator.HasAnyPermission(ctx, []string{
		types.PermissionManageEmployees,
		types.PermissionManageVehicles,
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *EvaluatorSuite) TestMissingActorIsAuthenticationError() {
	_, err := s.evaluator.Resolve(context.Background())
	s.Error(err)
	s.True(ierr.IsAuthentication(err))
}
