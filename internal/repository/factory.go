package repository

import (
	"github.com/drivestack/drivestack/internal/domain/auth"
	"github.com/drivestack/drivestack/internal/domain/contract"
	"github.com/drivestack/drivestack/internal/domain/customer"
	"github.com/drivestack/drivestack/internal/domain/employee"
	"github.com/drivestack/drivestack/internal/domain/tenant"
	"github.com/drivestack/drivestack/internal/domain/user"
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	postgresRepo "github.com/drivestack/drivestack/internal/repository/postgres"
)

func NewContractRepository(db postgres.IClient, logger *logger.Logger) contract.Repository {
	return postgresRepo.NewContractRepository(db, logger)
}

func NewScheduleChecker(db postgres.IClient, logger *logger.Logger) vehicle.ScheduleChecker {
	return postgresRepo.NewScheduleChecker(db, logger)
}

func NewCustomerRepository(db postgres.IClient, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewVehicleRepository(db postgres.IClient, logger *logger.Logger) vehicle.Repository {
	return postgresRepo.NewVehicleRepository(db, logger)
}

func NewEmployeeRepository(db postgres.IClient, logger *logger.Logger) employee.Repository {
	return postgresRepo.NewEmployeeRepository(db, logger)
}

func NewTenantRepository(db postgres.IClient, logger *logger.Logger) tenant.Repository {
	return postgresRepo.NewTenantRepository(db, logger)
}

func NewUserRepository(db postgres.IClient, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAuthRepository(db postgres.IClient, logger *logger.Logger) auth.Repository {
	return postgresRepo.NewAuthRepository(db, logger)
}
