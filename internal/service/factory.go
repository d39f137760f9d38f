package service

import (
	"github.com/drivestack/drivestack/internal/config"
	"github.com/drivestack/drivestack/internal/domain/auth"
	"github.com/drivestack/drivestack/internal/domain/contract"
	"github.com/drivestack/drivestack/internal/domain/customer"
	"github.com/drivestack/drivestack/internal/domain/employee"
	"github.com/drivestack/drivestack/internal/domain/tenant"
	"github.com/drivestack/drivestack/internal/domain/user"
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/pricing"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// TierTable is the injected loyalty policy used by every tier
	// resolution in the system
	TierTable *pricing.TierTable

	// Repositories
	AuthRepo     auth.Repository
	UserRepo     user.Repository
	ContractRepo contract.Repository
	CustomerRepo customer.Repository
	VehicleRepo  vehicle.Repository
	EmployeeRepo employee.Repository
	TenantRepo   tenant.Repository

	ScheduleChecker vehicle.ScheduleChecker
}
