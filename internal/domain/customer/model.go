package customer

import (
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// Customer represents a renting customer. TotalRentals only ever grows and
// is incremented exclusively by contract completion, in the same transaction
// as the contract update; the loyalty tier is derived from it on every read.
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// Name is the full name of the customer
	Name string `db:"name" json:"name"`

	// Email is the email of the customer
	Email string `db:"email" json:"email"`

	// Phone is the contact phone number
	Phone string `db:"phone" json:"phone"`

	// LicenseNumber is the driving licence number
	LicenseNumber string `db:"license_number" json:"license_number"`

	// TotalRentals is the count of completed rentals
	TotalRentals int `db:"total_rentals" json:"total_rentals"`

	// LifetimeValue accumulates the total amounts of completed contracts
	LifetimeValue decimal.Decimal `db:"lifetime_value" json:"lifetime_value"`

	// ApplyTierDiscount opts the customer in or out of tier-based pricing
	ApplyTierDiscount bool `db:"apply_tier_discount" json:"apply_tier_discount"`

	// Blacklisted blocks new contract creation for this customer
	Blacklisted bool `db:"blacklisted" json:"blacklisted"`

	// Metadata
	Metadata map[string]string `db:"metadata" json:"metadata"`

	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	if c.TotalRentals < 0 {
		return ierr.NewError("negative rental count").
			WithHint("Completed rental count cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
