package pricing

import (
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// OverageParams are the inputs for an overage charge calculation
type OverageParams struct {
	// ActualKm is the distance actually driven over the rental
	ActualKm decimal.Decimal

	// AllowedKm is the total allowance snapshotted on the contract
	AllowedKm decimal.Decimal

	// CompletedRentals drives tier resolution for rate and discount
	CompletedRentals int

	// ApplyTierDiscount selects tier-based pricing. When false the base
	// tier's flat rate is charged and no discount is applied.
	ApplyTierDiscount bool

	// ExplicitRate, when set, overrides the tier's per-km overage rate
	ExplicitRate *decimal.Decimal
}

// OverageResult is the outcome of an overage calculation. A zero OverageKm
// means everything else is zero and Tier is empty.
type OverageResult struct {
	Tier            types.LoyaltyTier `json:"tier"`
	OverageKm       decimal.Decimal   `json:"overage_km"`
	RateUsed        decimal.Decimal   `json:"rate_used"`
	BaseCharge      decimal.Decimal   `json:"base_charge"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
	FinalCharge     decimal.Decimal   `json:"final_charge"`
}

// ComputeOverage prices the distance driven beyond a contract's allowance.
// Charges never go negative: driving under the allowance produces a zero
// result, not a credit.
func (t *TierTable) ComputeOverage(p OverageParams) (OverageResult, error) {
	if p.ActualKm.IsNegative() {
		return OverageResult{}, ierr.NewError("driven distance cannot be negative").
			WithReportableDetails(map[string]any{"actual_km": p.ActualKm}).
			Mark(ierr.ErrValidation)
	}
	if p.AllowedKm.IsNegative() {
		return OverageResult{}, ierr.NewError("allowed distance cannot be negative").
			WithReportableDetails(map[string]any{"allowed_km": p.AllowedKm}).
			Mark(ierr.ErrValidation)
	}
	if p.ExplicitRate != nil && p.ExplicitRate.IsNegative() {
		return OverageResult{}, ierr.NewError("overage rate cannot be negative").
			WithReportableDetails(map[string]any{"explicit_rate": *p.ExplicitRate}).
			Mark(ierr.ErrValidation)
	}

	overage := p.ActualKm.Sub(p.AllowedKm)
	if !overage.IsPositive() {
		return OverageResult{
			Tier:            types.LoyaltyTierNone,
			OverageKm:       decimal.Zero,
			RateUsed:        decimal.Zero,
			BaseCharge:      decimal.Zero,
			DiscountPercent: decimal.Zero,
			DiscountAmount:  decimal.Zero,
			FinalCharge:     decimal.Zero,
		}, nil
	}

	tier, err := t.Resolve(p.CompletedRentals)
	if err != nil {
		return OverageResult{}, err
	}

	// Customers who opted out of tier pricing pay the base tier's flat rate
	// with no discount, regardless of their rental count.
	pricingTier := tier
	if !p.ApplyTierDiscount {
		pricingTier = t.Base()
	}

	rate := pricingTier.OverageRate
	if p.ExplicitRate != nil {
		rate = *p.ExplicitRate
	}

	discountPct := decimal.Zero
	if p.ApplyTierDiscount {
		discountPct = pricingTier.DiscountPercent
	}

	baseCharge := overage.Mul(rate)
	discountAmount := baseCharge.Mul(discountPct).Div(decimal.NewFromInt(100))
	finalCharge := baseCharge.Sub(discountAmount)

	return OverageResult{
		Tier:            pricingTier.ID,
		OverageKm:       overage,
		RateUsed:        rate,
		BaseCharge:      baseCharge,
		DiscountPercent: discountPct,
		DiscountAmount:  discountAmount,
		FinalCharge:     finalCharge,
	}, nil
}
