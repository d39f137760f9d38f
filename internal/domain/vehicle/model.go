package vehicle

import (
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// Vehicle represents a fleet vehicle
type Vehicle struct {
	// ID is the unique identifier for the vehicle
	ID string `db:"id" json:"id"`

	// PlateNumber is the registration plate
	PlateNumber string `db:"plate_number" json:"plate_number"`

	Make  string `db:"make" json:"make"`
	Model string `db:"model" json:"model"`
	Year  int    `db:"year" json:"year"`

	// Mileage is the current odometer reading
	Mileage decimal.Decimal `db:"mileage" json:"mileage"`

	// DailyRate is the rental price per day
	DailyRate decimal.Decimal `db:"daily_rate" json:"daily_rate"`

	VehicleStatus types.VehicleStatus `db:"vehicle_status" json:"vehicle_status"`

	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

func (v *Vehicle) Validate() error {
	if v.PlateNumber == "" {
		return ierr.NewError("plate number is required").
			WithHint("Plate number is required").
			Mark(ierr.ErrValidation)
	}
	if v.Mileage.IsNegative() {
		return ierr.NewError("negative mileage").
			WithHint("Mileage cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if !v.VehicleStatus.Validate() {
		return ierr.NewError("invalid vehicle status").
			WithHintf("Unknown vehicle status %s", v.VehicleStatus).
			Mark(ierr.ErrValidation)
	}
	return nil
}
