package dto

import (
	"time"

	"github.com/drivestack/drivestack/internal/domain/contract"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/drivestack/drivestack/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateContractRequest struct {
	CustomerID string `json:"customer_id" binding:"required" validate:"required"`
	VehicleID  string `json:"vehicle_id" binding:"required" validate:"required"`

	StartDate time.Time `json:"start_date" binding:"required" validate:"required"`
	EndDate   time.Time `json:"end_date" binding:"required" validate:"required"`

	StartOdometer decimal.Decimal `json:"start_odometer"`

	// DailyRate overrides the vehicle's default rate when set
	DailyRate *decimal.Decimal `json:"daily_rate,omitempty"`

	AdditionalAmount decimal.Decimal  `json:"additional_amount"`
	DiscountAmount   decimal.Decimal  `json:"discount_amount"`
	DepositAmount    *decimal.Decimal `json:"deposit_amount,omitempty"`

	Notes  string            `json:"notes,omitempty"`
	Extras map[string]string `json:"extras,omitempty"`
}

func (r *CreateContractRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.EndDate.After(r.StartDate) {
		return ierr.NewError("end date must be after start date").
			WithHint("End date must be after the start date").
			WithReportableDetails(map[string]any{
				"start_date": r.StartDate,
				"end_date":   r.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.StartOdometer.IsNegative() {
		return ierr.NewError("start odometer is negative").
			WithHint("Odometer readings must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if r.DailyRate != nil && r.DailyRate.IsNegative() {
		return ierr.NewError("daily rate is negative").
			WithHint("Daily rate must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type CompleteContractRequest struct {
	EndOdometer decimal.Decimal `json:"end_odometer" binding:"required" validate:"required"`

	// ActualReturnDate defaults to the completion time when omitted
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`

	AdditionalCharges decimal.Decimal `json:"additional_charges"`
	Notes             string          `json:"notes,omitempty"`
}

func (r *CompleteContractRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.EndOdometer.IsNegative() {
		return ierr.NewError("end odometer is negative").
			WithHint("Odometer readings must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if r.AdditionalCharges.IsNegative() {
		return ierr.NewError("additional charges are negative").
			WithHint("Additional charges must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ExtendContractRequest struct {
	NewEndDate time.Time `json:"new_end_date" binding:"required" validate:"required"`
	Notes      string    `json:"notes,omitempty"`
}

func (r *ExtendContractRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CancelContractRequest struct {
	Reason string `json:"reason" binding:"required" validate:"required"`
}

func (r *CancelContractRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type EstimateOverageRequest struct {
	EndOdometer decimal.Decimal `json:"end_odometer" binding:"required" validate:"required"`
}

func (r *EstimateOverageRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.EndOdometer.IsNegative() {
		return ierr.NewError("end odometer is negative").
			WithHint("Odometer readings must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OverageBreakdown is the computed overage charge detail returned by the
// completion and estimate endpoints
type OverageBreakdown struct {
	TierID          types.LoyaltyTier `json:"tier_id"`
	OverageKm       decimal.Decimal   `json:"overage_km"`
	RateUsed        decimal.Decimal   `json:"rate_used"`
	BaseCharge      decimal.Decimal   `json:"base_charge"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
	FinalCharge     decimal.Decimal   `json:"final_charge"`
}

type ContractResponse struct {
	*contract.Contract

	// Overage is present on completion responses and overage estimates
	Overage *OverageBreakdown `json:"overage,omitempty"`
}

type ListContractsResponse struct {
	Items []*ContractResponse `json:"items"`
	Total int                 `json:"total"`
}
