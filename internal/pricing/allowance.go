package pricing

import (
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// AllowanceParams are the inputs for a distance allowance calculation
type AllowanceParams struct {
	// BaseDailyKmLimit is the tenant's base per-day distance limit
	BaseDailyKmLimit decimal.Decimal

	// TotalDays is the rental duration in whole days, at least 1
	TotalDays int

	// CompletedRentals drives tier resolution for the km bonus
	CompletedRentals int

	// ApplyBonus controls whether the customer's tier bonus is added.
	// When false the allowance is the bare base limit.
	ApplyBonus bool
}

// AllowanceResult is the computed distance allowance for a contract. The
// values are snapshotted onto the contract at creation so later tier changes
// never reprice an open rental.
type AllowanceResult struct {
	Tier              types.LoyaltyTier `json:"tier"`
	BaseDailyKmLimit  decimal.Decimal   `json:"base_daily_km_limit"`
	KmBonusPerDay     decimal.Decimal   `json:"km_bonus_per_day"`
	TotalDailyKmLimit decimal.Decimal   `json:"total_daily_km_limit"`
	TotalKmAllowed    decimal.Decimal   `json:"total_km_allowed"`
}

// ComputeAllowance derives the total distance allowance for a rental:
// (base daily limit + tier bonus) * total days.
func (t *TierTable) ComputeAllowance(p AllowanceParams) (AllowanceResult, error) {
	if p.TotalDays < 1 {
		return AllowanceResult{}, ierr.NewError("rental duration must be at least one day").
			WithReportableDetails(map[string]any{"total_days": p.TotalDays}).
			Mark(ierr.ErrValidation)
	}
	if p.BaseDailyKmLimit.IsNegative() {
		return AllowanceResult{}, ierr.NewError("daily km limit cannot be negative").
			WithReportableDetails(map[string]any{"base_daily_km_limit": p.BaseDailyKmLimit}).
			Mark(ierr.ErrValidation)
	}

	tier, err := t.Resolve(p.CompletedRentals)
	if err != nil {
		return AllowanceResult{}, err
	}

	bonus := decimal.Zero
	if p.ApplyBonus {
		bonus = tier.KmBonusPerDay
	}

	daily := p.BaseDailyKmLimit.Add(bonus)
	return AllowanceResult{
		Tier:              tier.ID,
		BaseDailyKmLimit:  p.BaseDailyKmLimit,
		KmBonusPerDay:     bonus,
		TotalDailyKmLimit: daily,
		TotalKmAllowed:    daily.Mul(decimal.NewFromInt(int64(p.TotalDays))),
	}, nil
}
