package dto

import (
	"github.com/drivestack/drivestack/internal/domain/customer"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/drivestack/drivestack/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required" validate:"required"`
	Email         string `json:"email" binding:"omitempty,email" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`

	// ApplyTierDiscount defaults to true; customers can opt out of tier
	// based pricing
	ApplyTierDiscount *bool `json:"apply_tier_discount,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpdateCustomerRequest struct {
	Name              *string           `json:"name,omitempty"`
	Email             *string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string           `json:"phone,omitempty"`
	LicenseNumber     *string           `json:"license_number,omitempty"`
	ApplyTierDiscount *bool             `json:"apply_tier_discount,omitempty"`
	Blacklisted       *bool             `json:"blacklisted,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CustomerResponse struct {
	*customer.Customer

	// Tier is derived from the completed-rental count on every read
	Tier types.LoyaltyTier `json:"tier"`
}

type ListCustomersResponse struct {
	Items []*CustomerResponse `json:"items"`
	Total int                 `json:"total"`
}

// TierBenefits describes what a loyalty tier grants
type TierBenefits struct {
	OverageRate     decimal.Decimal `json:"overage_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	KmBonusPerDay   decimal.Decimal `json:"km_bonus_per_day"`
}

// NextTierProgress reports how far the customer is from the next tier
type NextTierProgress struct {
	TierID           types.LoyaltyTier `json:"tier_id"`
	MinRentals       int               `json:"min_rentals"`
	RentalsRemaining int               `json:"rentals_remaining"`
}

type TierInfoResponse struct {
	CustomerID        string            `json:"customer_id"`
	Tier              types.LoyaltyTier `json:"tier"`
	TotalRentals      int               `json:"total_rentals"`
	ApplyTierDiscount bool              `json:"apply_tier_discount"`
	Benefits          TierBenefits      `json:"benefits"`

	// NextTier is nil at the top tier
	NextTier *NextTierProgress `json:"next_tier,omitempty"`
}
