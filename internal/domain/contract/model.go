package contract

import (
	"time"

	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// Contract represents a rental contract. Amounts and distances are recorded
// with decimal precision; the distance allowance is snapshotted at creation
// time so later tenant policy changes never affect a running contract.
type Contract struct {
	// ID is the unique identifier for the contract
	ID string `db:"id" json:"id"`

	// ContractNumber is the short human-facing code printed on the agreement
	ContractNumber string `db:"contract_number" json:"contract_number"`

	// CustomerID references the renting customer
	CustomerID string `db:"customer_id" json:"customer_id"`

	// VehicleID references the rented vehicle
	VehicleID string `db:"vehicle_id" json:"vehicle_id"`

	// CreatedByEmployeeID references the employee who confirmed the
	// reservation, empty when the owner created it directly
	CreatedByEmployeeID string `db:"created_by_employee_id" json:"created_by_employee_id"`

	StartDate        time.Time  `db:"start_date" json:"start_date"`
	EndDate          time.Time  `db:"end_date" json:"end_date"`
	ActualReturnDate *time.Time `db:"actual_return_date" json:"actual_return_date,omitempty"`

	DailyRate        decimal.Decimal `db:"daily_rate" json:"daily_rate"`
	TotalDays        int             `db:"total_days" json:"total_days"`
	BaseAmount       decimal.Decimal `db:"base_amount" json:"base_amount"`
	AdditionalAmount decimal.Decimal `db:"additional_amount" json:"additional_amount"`
	DiscountAmount   decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxAmount        decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`

	StartOdometer decimal.Decimal  `db:"start_odometer" json:"start_odometer"`
	EndOdometer   *decimal.Decimal `db:"end_odometer" json:"end_odometer,omitempty"`

	// Distance allowance snapshot, captured at creation time
	DailyKmLimit   decimal.Decimal `db:"daily_km_limit" json:"daily_km_limit"`
	KmBonusPerDay  decimal.Decimal `db:"km_bonus_per_day" json:"km_bonus_per_day"`
	TotalKmAllowed decimal.Decimal `db:"total_km_allowed" json:"total_km_allowed"`

	// Overage breakdown, persisted at completion
	OverageKm     decimal.Decimal `db:"overage_km" json:"overage_km"`
	OverageCharge decimal.Decimal `db:"overage_charge" json:"overage_charge"`

	ContractStatus types.ContractStatus `db:"contract_status" json:"contract_status"`

	DepositAmount   decimal.Decimal `db:"deposit_amount" json:"deposit_amount"`
	DepositReturned bool            `db:"deposit_returned" json:"deposit_returned"`

	CancellationReason string            `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	Notes              string            `db:"notes" json:"notes,omitempty"`
	Extras             map[string]string `db:"extras" json:"extras,omitempty"`

	// Version guards concurrent lifecycle mutations with an optimistic check
	Version int `db:"version" json:"version"`

	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

// Validate checks the structural invariants of a contract
func (c *Contract) Validate() error {
	if c.CustomerID == "" {
		return ierr.NewError("customer id is required").
			WithHint("Customer is required").
			Mark(ierr.ErrValidation)
	}
	if c.VehicleID == "" {
		return ierr.NewError("vehicle id is required").
			WithHint("Vehicle is required").
			Mark(ierr.ErrValidation)
	}
	if c.EndDate.Before(c.StartDate) {
		return ierr.NewError("end date before start date").
			WithHint("End date must not be before the start date").
			WithReportableDetails(map[string]any{
				"start_date": c.StartDate,
				"end_date":   c.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.StartOdometer.IsNegative() {
		return ierr.NewError("start odometer is negative").
			WithHint("Odometer readings must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if c.EndOdometer != nil && c.EndOdometer.LessThan(c.StartOdometer) {
		return ierr.NewError("end odometer below start odometer").
			WithHint("End odometer must not be below the start odometer").
			WithReportableDetails(map[string]any{
				"start_odometer": c.StartOdometer,
				"end_odometer":   *c.EndOdometer,
			}).
			Mark(ierr.ErrValidation)
	}
	if !c.ContractStatus.Validate() {
		return ierr.NewError("invalid contract status").
			WithHintf("Unknown contract status %s", c.ContractStatus).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DrivenKm returns the distance actually driven, available once the end
// odometer has been recorded
func (c *Contract) DrivenKm() decimal.Decimal {
	if c.EndOdometer == nil {
		return decimal.Zero
	}
	return c.EndOdometer.Sub(c.StartOdometer)
}
