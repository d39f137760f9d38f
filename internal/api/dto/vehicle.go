package dto

import (
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/drivestack/drivestack/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateVehicleRequest struct {
	PlateNumber string `json:"plate_number" binding:"required" validate:"required"`
	Make        string `json:"make" binding:"required" validate:"required"`
	Model       string `json:"model" binding:"required" validate:"required"`
	Year        int    `json:"year" binding:"required" validate:"required,gte=1950"`

	Mileage   decimal.Decimal `json:"mileage"`
	DailyRate decimal.Decimal `json:"daily_rate" binding:"required" validate:"required"`
}

func (r *CreateVehicleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Mileage.IsNegative() {
		return ierr.NewError("mileage is negative").
			WithHint("Mileage must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if r.DailyRate.IsNegative() {
		return ierr.NewError("daily rate is negative").
			WithHint("Daily rate must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type UpdateVehicleRequest struct {
	Mileage       *decimal.Decimal     `json:"mileage,omitempty"`
	DailyRate     *decimal.Decimal     `json:"daily_rate,omitempty"`
	VehicleStatus *types.VehicleStatus `json:"vehicle_status,omitempty"`
}

func (r *UpdateVehicleRequest) Validate() error {
	if r.VehicleStatus != nil && !r.VehicleStatus.Validate() {
		return ierr.NewError("invalid vehicle status").
			WithHintf("Unknown vehicle status %s", *r.VehicleStatus).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type VehicleResponse struct {
	*vehicle.Vehicle
}

type ListVehiclesResponse struct {
	Items []*VehicleResponse `json:"items"`
	Total int                `json:"total"`
}
