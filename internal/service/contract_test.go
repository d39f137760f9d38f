package service

import (
	"testing"
	"time"

	"github.com/drivestack/drivestack/internal/api/dto"
	"github.com/drivestack/drivestack/internal/domain/customer"
	"github.com/drivestack/drivestack/internal/domain/employee"
	"github.com/drivestack/drivestack/internal/domain/tenant"
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/pricing"
	"github.com/drivestack/drivestack/internal/testutil"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ContractServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ContractService

	testTenant   *tenant.Tenant
	testCustomer *customer.Customer
	testVehicle  *vehicle.Vehicle
}

func TestContractService(t *testing.T) {
	suite.Run(t, new(ContractServiceSuite))
}

func (s *ContractServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *ContractServiceSuite) serviceParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		TierTable:       pricing.DefaultTierTable(),
		AuthRepo:        stores.AuthRepo,
		UserRepo:        stores.UserRepo,
		ContractRepo:    stores.ContractRepo,
		CustomerRepo:    stores.CustomerRepo,
		VehicleRepo:     stores.VehicleRepo,
		EmployeeRepo:    stores.EmployeeRepo,
		TenantRepo:      stores.TenantRepo,
		ScheduleChecker: stores.ScheduleChecker,
	}
}

func (s *ContractServiceSuite) setupService() {
	s.service = NewContractService(s.serviceParams())
}

func (s *ContractServiceSuite) setupTestData() {
	s.testTenant = &tenant.Tenant{
		ID:        types.DefaultTenantID,
		Name:      "Test Rentals",
		Status:    types.StatusPublished,
		CreatedAt: s.GetNow(),
		UpdatedAt: s.GetNow(),
		RentalPolicy: tenant.RentalPolicy{
			DailyKmLimit:  decimal.NewFromInt(300),
			DepositAmount: decimal.NewFromInt(500),
			TaxPercent:    decimal.Zero,
		},
	}
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), s.testTenant))

	s.testCustomer = s.createCustomer(7, true)
	s.testVehicle = s.createVehicle(decimal.NewFromInt(100))
}

func (s *ContractServiceSuite) createCustomer(totalRentals int, applyTierDiscount bool) *customer.Customer {
	c := &customer.Customer{
		ID:                s.GetUUID(),
		Name:              "Test Customer",
		Email:             "customer@example.com",
		TotalRentals:      totalRentals,
		LifetimeValue:     decimal.Zero,
		ApplyTierDiscount: applyTierDiscount,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), c))
	return c
}

func (s *ContractServiceSuite) createVehicle(dailyRate decimal.Decimal) *vehicle.Vehicle {
	v := &vehicle.Vehicle{
		ID:            s.GetUUID(),
		PlateNumber:   "B-RT 1234",
		Make:          "VW",
		Model:         "Golf",
		Year:          2023,
		Mileage:       decimal.NewFromInt(10000),
		DailyRate:     dailyRate,
		VehicleStatus: types.VehicleStatusAvailable,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().VehicleRepo.Create(s.GetContext(), v))
	return v
}

func (s *ContractServiceSuite) createActiveContract(days int) *dto.ContractResponse {
	start := s.GetNow().Truncate(24 * time.Hour)
	resp, err := s.service.CreateContract(s.GetContext(), &dto.CreateContractRequest{
		CustomerID:    s.testCustomer.ID,
		VehicleID:     s.testVehicle.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, days),
		StartOdometer: decimal.NewFromInt(10000),
	})
	s.NoError(err)
	return resp
}

func (s *ContractServiceSuite) TestCreateContractSnapshotsAllowance() {
	// 7 completed rentals resolve to silver, 50 bonus km per day on top of
	// the tenant's 300 base limit
	resp := s.createActiveContract(5)
	c := resp.Contract

	s.Equal(types.ContractStatusActive, c.ContractStatus)
	s.Equal(5, c.TotalDays)
	s.Equal("300", c.DailyKmLimit.String())
	s.Equal("50", c.KmBonusPerDay.String())
	s.Equal("1750", c.TotalKmAllowed.String())
	s.Equal("500", c.BaseAmount.String())
	s.Equal("500", c.DepositAmount.String())
	s.Equal(1, c.Version)
	s.NotEmpty(c.ContractNumber)

	veh, err := s.GetStores().VehicleRepo.Get(s.GetContext(), s.testVehicle.ID)
	s.NoError(err)
	s.Equal(types.VehicleStatusRented, veh.VehicleStatus)
}

func (s *ContractServiceSuite) TestCreateContractRejectsBlacklistedCustomer() {
	s.testCustomer.Blacklisted = true
	s.NoError(s.GetStores().CustomerRepo.Update(s.GetContext(), s.testCustomer))

	start := s.GetNow()
	_, err := s.service.CreateContract(s.GetContext(), &dto.CreateContractRequest{
		CustomerID:    s.testCustomer.ID,
		VehicleID:     s.testVehicle.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 3),
		StartOdometer: decimal.NewFromInt(10000),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ContractServiceSuite) TestCreateContractRejectsRentedVehicle() {
	s.testVehicle.VehicleStatus = types.VehicleStatusRented
	s.NoError(s.GetStores().VehicleRepo.Update(s.GetContext(), s.testVehicle))

	start := s.GetNow()
	_, err := s.service.CreateContract(s.GetContext(), &dto.CreateContractRequest{
		CustomerID:    s.testCustomer.ID,
		VehicleID:     s.testVehicle.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 3),
		StartOdometer: decimal.NewFromInt(10000),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ContractServiceSuite) TestCreateContractRejectsOverlappingReservation() {
	existing := s.createActiveContract(5)

	// release the vehicle status but keep the active contract so only the
	// schedule check can catch the overlap
	s.testVehicle.VehicleStatus = types.VehicleStatusAvailable
	s.NoError(s.GetStores().VehicleRepo.Update(s.GetContext(), s.testVehicle))

	_, err := s.service.CreateContract(s.GetContext(), &dto.CreateContractRequest{
		CustomerID:    s.testCustomer.ID,
		VehicleID:     s.testVehicle.ID,
		StartDate:     existing.Contract.StartDate.AddDate(0, 0, 2),
		EndDate:       existing.Contract.EndDate.AddDate(0, 0, 2),
		StartOdometer: decimal.NewFromInt(10000),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ContractServiceSuite) TestCompleteContract() {
	created := s.createActiveContract(5)

	// 2000 km driven against a 1750 km allowance: 250 km overage at the
	// silver rate of 15 with a 10 percent discount
	resp, err := s.service.CompleteContract(s.GetContext(), created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(12000),
	})
	s.NoError(err)

	s.Equal(types.ContractStatusCompleted, resp.Contract.ContractStatus)
	s.Equal("250", resp.Overage.OverageKm.String())
	s.Equal("15", resp.Overage.RateUsed.String())
	s.Equal("3750", resp.Overage.BaseCharge.String())
	s.Equal("375", resp.Overage.DiscountAmount.String())
	s.Equal("3375", resp.Overage.FinalCharge.String())
	s.Equal("3375", resp.Contract.OverageCharge.String())
	s.Equal("3875", resp.Contract.TotalAmount.String())
	s.Equal(2, resp.Contract.Version)
	s.NotNil(resp.Contract.ActualReturnDate)

	cust, err := s.GetStores().CustomerRepo.Get(s.GetContext(), s.testCustomer.ID)
	s.NoError(err)
	s.Equal(8, cust.TotalRentals)
	s.Equal("3875", cust.LifetimeValue.String())

	veh, err := s.GetStores().VehicleRepo.Get(s.GetContext(), s.testVehicle.ID)
	s.NoError(err)
	s.Equal(types.VehicleStatusAvailable, veh.VehicleStatus)
	s.Equal("12000", veh.Mileage.String())
}

func (s *ContractServiceSuite) TestCompleteContractTwiceFailsWithoutDoubleIncrement() {
	created := s.createActiveContract(5)

	_, err := s.service.CompleteContract(s.GetContext(), created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(12000),
	})
	s.NoError(err)

	_, err = s.service.CompleteContract(s.GetContext(), created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(12000),
	})
	s.Error(err)
	s.True(ierr.IsInvalidTransition(err))

	cust, err := s.GetStores().CustomerRepo.Get(s.GetContext(), s.testCustomer.ID)
	s.NoError(err)
	s.Equal(8, cust.TotalRentals)
}

func (s *ContractServiceSuite) TestCompleteContractRejectsLowerOdometer() {
	created := s.createActiveContract(5)

	_, err := s.service.CompleteContract(s.GetContext(), created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(9000),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ContractServiceSuite) TestOptedOutCustomerPaysBaseRate() {
	// 25 completed rentals would be platinum, but the customer opted out of
	// tier pricing: no bonus km, base overage rate, no discount
	s.testCustomer = s.createCustomer(25, false)

	created := s.createActiveContract(5)
	s.Equal("1500", created.Contract.TotalKmAllowed.String())

	resp, err := s.service.CompleteContract(s.GetContext(), created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(12000),
	})
	s.NoError(err)
	s.Equal("500", resp.Overage.OverageKm.String())
	s.Equal("20", resp.Overage.RateUsed.String())
	s.Equal("0", resp.Overage.DiscountAmount.String())
	s.Equal("10000", resp.Overage.FinalCharge.String())
}

func (s *ContractServiceSuite) TestExtendContractRepricesBaseAmountOnly() {
	s.testVehicle = s.createVehicle(decimal.NewFromInt(21000))

	created := s.createActiveContract(7)
	s.Equal("147000", created.Contract.BaseAmount.String())
	allowedBefore := created.Contract.TotalKmAllowed

	resp, err := s.service.ExtendContract(s.GetContext(), created.Contract.ID, &dto.ExtendContractRequest{
		NewEndDate: created.Contract.StartDate.AddDate(0, 0, 10),
	})
	s.NoError(err)

	s.Equal(10, resp.Contract.TotalDays)
	s.Equal("210000", resp.Contract.BaseAmount.String())
	s.Equal("210000", resp.Contract.TotalAmount.String())
	s.Equal(types.ContractStatusActive, resp.Contract.ContractStatus)

	// the allowance snapshot and overage fields stay untouched until
	// completion
	s.True(resp.Contract.TotalKmAllowed.Equal(allowedBefore))
	s.Equal("0", resp.Contract.OverageCharge.String())
	s.Equal(2, resp.Contract.Version)
}

func (s *ContractServiceSuite) TestExtendContractRejectsEarlierEndDate() {
	created := s.createActiveContract(5)

	_, err := s.service.ExtendContract(s.GetContext(), created.Contract.ID, &dto.ExtendContractRequest{
		NewEndDate: created.Contract.EndDate.AddDate(0, 0, -1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ContractServiceSuite) TestExtendCompletedContractFails() {
	created := s.createActiveContract(5)
	_, err := s.service.CompleteContract(s.GetContext(), created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(11000),
	})
	s.NoError(err)

	_, err = s.service.ExtendContract(s.GetContext(), created.Contract.ID, &dto.ExtendContractRequest{
		NewEndDate: created.Contract.EndDate.AddDate(0, 0, 3),
	})
	s.Error(err)
	s.True(ierr.IsInvalidTransition(err))
}

func (s *ContractServiceSuite) TestCancelContract() {
	created := s.createActiveContract(5)

	resp, err := s.service.CancelContract(s.GetContext(), created.Contract.ID, &dto.CancelContractRequest{
		Reason: "customer no-show",
	})
	s.NoError(err)

	s.Equal(types.ContractStatusCancelled, resp.Contract.ContractStatus)
	s.Equal("customer no-show", resp.Contract.CancellationReason)
	// cancellation never reprices
	s.True(resp.Contract.TotalAmount.Equal(created.Contract.TotalAmount))

	veh, err := s.GetStores().VehicleRepo.Get(s.GetContext(), s.testVehicle.ID)
	s.NoError(err)
	s.Equal(types.VehicleStatusAvailable, veh.VehicleStatus)

	cust, err := s.GetStores().CustomerRepo.Get(s.GetContext(), s.testCustomer.ID)
	s.NoError(err)
	s.Equal(7, cust.TotalRentals)
}

func (s *ContractServiceSuite) TestEstimateOverageDoesNotMutate() {
	created := s.createActiveContract(5)

	est, err := s.service.EstimateOverage(s.GetContext(), created.Contract.ID, &dto.EstimateOverageRequest{
		EndOdometer: decimal.NewFromInt(12000),
	})
	s.NoError(err)
	s.Equal("3375", est.FinalCharge.String())

	stored, err := s.GetStores().ContractRepo.Get(s.GetContext(), created.Contract.ID)
	s.NoError(err)
	s.Equal(types.ContractStatusActive, stored.ContractStatus)
	s.Equal("0", stored.OverageCharge.String())
	s.Equal(1, stored.Version)
}

func (s *ContractServiceSuite) TestTenantIsolation() {
	created := s.createActiveContract(5)

	// an owner of another tenant must not even learn the contract exists
	foreign := testutil.SetupContextWithActor("tenant-other", "user-other", types.UserRoleOwner)

	_, err := s.service.GetContract(foreign, created.Contract.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.CompleteContract(foreign, created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(12000),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ContractServiceSuite) TestConcurrentLifecycleMutationConflicts() {
	created := s.createActiveContract(5)
	repo := s.GetStores().ContractRepo

	first, err := repo.Get(s.GetContext(), created.Contract.ID)
	s.NoError(err)
	second, err := repo.Get(s.GetContext(), created.Contract.ID)
	s.NoError(err)

	first.Notes = "winner"
	s.NoError(repo.Update(s.GetContext(), first))

	second.Notes = "loser"
	err = repo.Update(s.GetContext(), second)
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))
}

func (s *ContractServiceSuite) TestEmployeeCompletionCounters() {
	emp := &employee.Employee{
		ID:               s.GetUUID(),
		UserID:           s.GetUUID(),
		Name:             "Agent",
		Role:             types.UserRoleAgent,
		EmployeeStatus:   types.EmployeeStatusActive,
		RevenueGenerated: decimal.Zero,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().EmployeeRepo.Create(s.GetContext(), emp))
	created := s.createActiveContract(5)

	ctx := types.SetEmployeeID(s.GetContext(), emp.ID)
	resp, err := s.service.CompleteContract(ctx, created.Contract.ID, &dto.CompleteContractRequest{
		EndOdometer: decimal.NewFromInt(12000),
	})
	s.NoError(err)

	stored, err := s.GetStores().EmployeeRepo.Get(s.GetContext(), emp.ID)
	s.NoError(err)
	s.Equal(1, stored.ContractsCompleted)
	s.True(stored.RevenueGenerated.Equal(resp.Contract.TotalAmount))
}
