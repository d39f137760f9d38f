package service

import (
	"context"
	"math"
	"time"

	"github.com/drivestack/drivestack/internal/api/dto"
	"github.com/drivestack/drivestack/internal/domain/contract"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/pricing"
	"github.com/drivestack/drivestack/internal/tenancy"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

type ContractService interface {
	CreateContract(ctx context.Context, req *dto.CreateContractRequest) (*dto.ContractResponse, error)
	GetContract(ctx context.Context, id string) (*dto.ContractResponse, error)
	ListContracts(ctx context.Context, filter *types.ContractFilter) (*dto.ListContractsResponse, error)
	CompleteContract(ctx context.Context, id string, req *dto.CompleteContractRequest) (*dto.ContractResponse, error)
	ExtendContract(ctx context.Context, id string, req *dto.ExtendContractRequest) (*dto.ContractResponse, error)
	CancelContract(ctx context.Context, id string, req *dto.CancelContractRequest) (*dto.ContractResponse, error)
	EstimateOverage(ctx context.Context, id string, req *dto.EstimateOverageRequest) (*dto.OverageBreakdown, error)
}

type contractService struct {
	ServiceParams
}

func NewContractService(params ServiceParams) ContractService {
	return &contractService{ServiceParams: params}
}

// CreateContract opens a new active contract. The distance allowance is
// snapshotted from the tenant policy and the customer's current tier, so
// later policy or tier changes never reprice a running rental.
func (s *contractService) CreateContract(ctx context.Context, req *dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if err := tenancy.AssertContext(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust.Blacklisted {
		return nil, ierr.NewError("customer is blacklisted").
			WithHint("Blacklisted customers cannot open new contracts").
			WithReportableDetails(map[string]any{"customer_id": cust.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	veh, err := s.VehicleRepo.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if veh.VehicleStatus != types.VehicleStatusAvailable {
		return nil, ierr.NewError("vehicle is not available").
			WithHintf("Vehicle %s is %s", veh.PlateNumber, veh.VehicleStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	available, err := s.ScheduleChecker.IsAvailable(ctx, veh.ID, req.StartDate, req.EndDate, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ierr.NewError("vehicle is already booked").
			WithHintf("Vehicle %s has a conflicting reservation", veh.PlateNumber).
			Mark(ierr.ErrInvalidOperation)
	}

	totalDays := rentalDays(req.StartDate, req.EndDate)

	allowance, err := s.TierTable.ComputeAllowance(pricing.AllowanceParams{
		BaseDailyKmLimit: s.tenantDailyKmLimit(ctx),
		TotalDays:        totalDays,
		CompletedRentals: cust.TotalRentals,
		ApplyBonus:       cust.ApplyTierDiscount,
	})
	if err != nil {
		return nil, err
	}

	dailyRate := veh.DailyRate
	if req.DailyRate != nil {
		dailyRate = *req.DailyRate
	}

	deposit := s.tenantDepositAmount(ctx)
	if req.DepositAmount != nil {
		deposit = *req.DepositAmount
	}

	c := &contract.Contract{
		ID:                  types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT),
		ContractNumber:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_CONTRACT_NUMBER),
		CustomerID:          cust.ID,
		VehicleID:           veh.ID,
		CreatedByEmployeeID: types.GetEmployeeID(ctx),
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		DailyRate:           dailyRate,
		TotalDays:           totalDays,
		AdditionalAmount:    req.AdditionalAmount,
		DiscountAmount:      req.DiscountAmount,
		StartOdometer:       req.StartOdometer,
		DailyKmLimit:        allowance.BaseDailyKmLimit,
		KmBonusPerDay:       allowance.KmBonusPerDay,
		TotalKmAllowed:      allowance.TotalKmAllowed,
		ContractStatus:      types.ContractStatusActive,
		DepositAmount:       deposit,
		Notes:               req.Notes,
		Extras:              req.Extras,
		Version:             1,
		EnvironmentID:       types.GetEnvironmentID(ctx),
		BaseModel:           types.GetDefaultBaseModel(ctx),
	}
	s.reprice(ctx, c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ContractRepo.Create(ctx, c); err != nil {
			return err
		}

		veh.VehicleStatus = types.VehicleStatusRented
		veh.UpdatedAt = time.Now().UTC()
		veh.UpdatedBy = types.GetUserID(ctx)
		return s.VehicleRepo.Update(ctx, veh)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("contract created",
		"contract_id", c.ID,
		"contract_number", c.ContractNumber,
		"customer_id", c.CustomerID,
		"vehicle_id", c.VehicleID,
		"tier", allowance.Tier,
	)
	return &dto.ContractResponse{Contract: c}, nil
}

func (s *contractService) GetContract(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenancy.AssertOwnership(ctx, c.TenantID, "contract", c.ID); err != nil {
		return nil, err
	}
	return &dto.ContractResponse{Contract: c}, nil
}

func (s *contractService) ListContracts(ctx context.Context, filter *types.ContractFilter) (*dto.ListContractsResponse, error) {
	if filter == nil {
		filter = &types.ContractFilter{QueryFilter: types.DefaultQueryFilter}
	}

	contracts, err := s.ContractRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ContractRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		items = append(items, &dto.ContractResponse{Contract: c})
	}
	return &dto.ListContractsResponse{Items: items, Total: total}, nil
}

// CompleteContract closes an active contract: prices the overage, settles
// the totals, releases the vehicle, and bumps the customer's rental count.
// Everything runs in one transaction so the contract write and the counter
// increments can never land separately.
func (s *contractService) CompleteContract(ctx context.Context, id string, req *dto.CompleteContractRequest) (*dto.ContractResponse, error) {
	if err := tenancy.AssertContext(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var response *dto.ContractResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.ContractRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		next, err := contract.Transition(c.ContractStatus, types.ContractEventComplete)
		if err != nil {
			return err
		}

		if req.EndOdometer.LessThan(c.StartOdometer) {
			return ierr.NewError("end odometer below start odometer").
				WithHint("End odometer must not be below the start odometer").
				WithReportableDetails(map[string]any{
					"start_odometer": c.StartOdometer,
					"end_odometer":   req.EndOdometer,
				}).
				Mark(ierr.ErrValidation)
		}

		cust, err := s.CustomerRepo.Get(ctx, c.CustomerID)
		if err != nil {
			return err
		}

		overage, err := s.TierTable.ComputeOverage(pricing.OverageParams{
			ActualKm:          req.EndOdometer.Sub(c.StartOdometer),
			AllowedKm:         c.TotalKmAllowed,
			CompletedRentals:  cust.TotalRentals,
			ApplyTierDiscount: cust.ApplyTierDiscount,
		})
		if err != nil {
			return err
		}

		returnDate := time.Now().UTC()
		if req.ActualReturnDate != nil {
			returnDate = *req.ActualReturnDate
		}

		endOdometer := req.EndOdometer
		c.EndOdometer = &endOdometer
		c.ActualReturnDate = &returnDate
		c.OverageKm = overage.OverageKm
		c.OverageCharge = overage.FinalCharge
		c.AdditionalAmount = c.AdditionalAmount.Add(req.AdditionalCharges)
		if req.Notes != "" {
			c.Notes = req.Notes
		}
		c.ContractStatus = next
		s.reprice(ctx, c)

		if err := s.ContractRepo.Update(ctx, c); err != nil {
			return err
		}

		cust.TotalRentals++
		cust.LifetimeValue = cust.LifetimeValue.Add(c.TotalAmount)
		cust.UpdatedAt = time.Now().UTC()
		cust.UpdatedBy = types.GetUserID(ctx)
		if err := s.CustomerRepo.Update(ctx, cust); err != nil {
			return err
		}

		if err := s.releaseVehicle(ctx, c.VehicleID, req.EndOdometer); err != nil {
			return err
		}

		if err := s.recordEmployeeCompletion(ctx, c.TotalAmount); err != nil {
			return err
		}

		response = &dto.ContractResponse{
			Contract: c,
			Overage: &dto.OverageBreakdown{
				TierID:          overage.Tier,
				OverageKm:       overage.OverageKm,
				RateUsed:        overage.RateUsed,
				BaseCharge:      overage.BaseCharge,
				DiscountPercent: overage.DiscountPercent,
				DiscountAmount:  overage.DiscountAmount,
				FinalCharge:     overage.FinalCharge,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("contract completed",
		"contract_id", id,
		"overage_km", response.Overage.OverageKm,
		"overage_charge", response.Overage.FinalCharge,
		"total_amount", response.Contract.TotalAmount,
	)
	return response, nil
}

// ExtendContract moves the end date of an active contract forward and
// reprices the base amount. Distance and overage fields stay untouched
// until completion.
func (s *contractService) ExtendContract(ctx context.Context, id string, req *dto.ExtendContractRequest) (*dto.ContractResponse, error) {
	if err := tenancy.AssertContext(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var response *dto.ContractResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.ContractRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if _, err := contract.Transition(c.ContractStatus, types.ContractEventExtend); err != nil {
			return err
		}

		if !req.NewEndDate.After(c.EndDate) {
			return ierr.NewError("new end date not after current end date").
				WithHint("Extension must move the end date forward").
				WithReportableDetails(map[string]any{
					"current_end_date": c.EndDate,
					"new_end_date":     req.NewEndDate,
				}).
				Mark(ierr.ErrValidation)
		}

		available, err := s.ScheduleChecker.IsAvailable(ctx, c.VehicleID, c.EndDate, req.NewEndDate, c.ID)
		if err != nil {
			return err
		}
		if !available {
			return ierr.NewError("vehicle is already booked").
				WithHint("The vehicle has a conflicting reservation in the extension period").
				Mark(ierr.ErrInvalidOperation)
		}

		c.EndDate = req.NewEndDate
		c.TotalDays = rentalDays(c.StartDate, c.EndDate)
		if req.Notes != "" {
			c.Notes = req.Notes
		}
		s.reprice(ctx, c)

		if err := s.ContractRepo.Update(ctx, c); err != nil {
			return err
		}

		response = &dto.ContractResponse{Contract: c}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("contract extended",
		"contract_id", id,
		"new_end_date", response.Contract.EndDate,
		"total_days", response.Contract.TotalDays,
	)
	return response, nil
}

// CancelContract cancels an active contract with an audit reason. No
// financial recomputation happens on cancellation.
func (s *contractService) CancelContract(ctx context.Context, id string, req *dto.CancelContractRequest) (*dto.ContractResponse, error) {
	if err := tenancy.AssertContext(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var response *dto.ContractResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.ContractRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		next, err := contract.Transition(c.ContractStatus, types.ContractEventCancel)
		if err != nil {
			return err
		}

		c.ContractStatus = next
		c.CancellationReason = req.Reason
		c.UpdatedAt = time.Now().UTC()
		c.UpdatedBy = types.GetUserID(ctx)

		if err := s.ContractRepo.Update(ctx, c); err != nil {
			return err
		}

		if err := s.releaseVehicle(ctx, c.VehicleID, decimal.Decimal{}); err != nil {
			return err
		}

		response = &dto.ContractResponse{Contract: c}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("contract cancelled", "contract_id", id, "reason", req.Reason)
	return response, nil
}

// EstimateOverage previews the overage breakdown for a candidate end
// odometer without mutating anything.
func (s *contractService) EstimateOverage(ctx context.Context, id string, req *dto.EstimateOverageRequest) (*dto.OverageBreakdown, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ContractStatus != types.ContractStatusActive {
		return nil, ierr.NewError("contract is not active").
			WithHintf("Cannot estimate overage for a %s contract", c.ContractStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	if req.EndOdometer.LessThan(c.StartOdometer) {
		return nil, ierr.NewError("end odometer below start odometer").
			WithHint("End odometer must not be below the start odometer").
			Mark(ierr.ErrValidation)
	}

	cust, err := s.CustomerRepo.Get(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	overage, err := s.TierTable.ComputeOverage(pricing.OverageParams{
		ActualKm:          req.EndOdometer.Sub(c.StartOdometer),
		AllowedKm:         c.TotalKmAllowed,
		CompletedRentals:  cust.TotalRentals,
		ApplyTierDiscount: cust.ApplyTierDiscount,
	})
	if err != nil {
		return nil, err
	}

	return &dto.OverageBreakdown{
		TierID:          overage.Tier,
		OverageKm:       overage.OverageKm,
		RateUsed:        overage.RateUsed,
		BaseCharge:      overage.BaseCharge,
		DiscountPercent: overage.DiscountPercent,
		DiscountAmount:  overage.DiscountAmount,
		FinalCharge:     overage.FinalCharge,
	}, nil
}

// reprice recomputes the derived amount fields from the contract's current
// inputs and stamps the audit fields.
func (s *contractService) reprice(ctx context.Context, c *contract.Contract) {
	c.BaseAmount = c.DailyRate.Mul(decimal.NewFromInt(int64(c.TotalDays)))

	taxable := c.BaseAmount.
		Add(c.AdditionalAmount).
		Add(c.OverageCharge).
		Sub(c.DiscountAmount)
	c.TaxAmount = taxable.Mul(s.tenantTaxPercent(ctx)).Div(decimal.NewFromInt(100))
	c.TotalAmount = taxable.Add(c.TaxAmount)

	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)
}

func (s *contractService) releaseVehicle(ctx context.Context, vehicleID string, endOdometer decimal.Decimal) error {
	veh, err := s.VehicleRepo.Get(ctx, vehicleID)
	if err != nil {
		return err
	}
	veh.VehicleStatus = types.VehicleStatusAvailable
	if endOdometer.GreaterThan(veh.Mileage) {
		veh.Mileage = endOdometer
	}
	veh.UpdatedAt = time.Now().UTC()
	veh.UpdatedBy = types.GetUserID(ctx)
	return s.VehicleRepo.Update(ctx, veh)
}

// recordEmployeeCompletion bumps the performance counters of the employee
// attached to the request context, if any. Owners complete contracts
// without an employee record.
func (s *contractService) recordEmployeeCompletion(ctx context.Context, total decimal.Decimal) error {
	employeeID := types.GetEmployeeID(ctx)
	if employeeID == "" {
		return nil
	}

	emp, err := s.EmployeeRepo.Get(ctx, employeeID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}

	emp.ContractsCompleted++
	emp.RevenueGenerated = emp.RevenueGenerated.Add(total)
	emp.UpdatedAt = time.Now().UTC()
	emp.UpdatedBy = types.GetUserID(ctx)
	return s.EmployeeRepo.Update(ctx, emp)
}

// tenantDailyKmLimit resolves the tenant's base daily distance limit. A
// missing tenant record or an out-of-bounds value is a tenant
// misconfiguration: it falls back to the platform default and is logged,
// never surfaced to the caller.
func (s *contractService) tenantDailyKmLimit(ctx context.Context) decimal.Decimal {
	fallback := s.Config.Rental.DefaultDailyKmLimit

	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		s.Logger.Warnw("tenant policy unavailable, using default daily km limit",
			"tenant_id", types.GetTenantID(ctx),
			"default", fallback,
		)
		return fallback
	}

	limit := t.RentalPolicy.DailyKmLimit
	if limit.LessThan(s.Config.Rental.MinDailyKmLimit) || limit.GreaterThan(s.Config.Rental.MaxDailyKmLimit) {
		s.Logger.Warnw("tenant daily km limit out of bounds, using default",
			"tenant_id", t.ID,
			"configured", limit,
			"default", fallback,
		)
		return fallback
	}
	return limit
}

func (s *contractService) tenantDepositAmount(ctx context.Context) decimal.Decimal {
	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return decimal.Zero
	}
	return t.RentalPolicy.DepositAmount
}

func (s *contractService) tenantTaxPercent(ctx context.Context) decimal.Decimal {
	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return s.Config.Rental.DefaultTaxPercent
	}
	return t.RentalPolicy.TaxPercent
}

// rentalDays counts whole billing days, rounding partial days up, with a
// one-day minimum.
func rentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
