package pricing

import (
	"sort"

	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// Tier describes one loyalty tier: a closed rental-count range and the
// benefits it grants.
type Tier struct {
	ID types.LoyaltyTier `json:"id"`

	// MinRentals and MaxRentals bound the completed-rental range, both
	// inclusive. A nil MaxRentals means unbounded (the top tier).
	MinRentals int  `json:"min_rentals"`
	MaxRentals *int `json:"max_rentals,omitempty"`

	// OverageRate is charged per km driven beyond the allowance
	OverageRate decimal.Decimal `json:"overage_rate"`

	// DiscountPercent is applied to the overage base charge
	DiscountPercent decimal.Decimal `json:"discount_percent"`

	// KmBonusPerDay extends the daily distance allowance
	KmBonusPerDay decimal.Decimal `json:"km_bonus_per_day"`
}

// TierTable is an immutable, validated set of loyalty tiers whose ranges
// partition [0, ∞) with no gaps or overlaps. It is injected wherever tier
// resolution happens so tests can substitute alternate policies.
type TierTable struct {
	tiers []Tier
}

// NewTierTable validates and builds a tier table. The ranges must be
// contiguous starting at 0 and exactly one tier must be unbounded.
func NewTierTable(tiers []Tier) (*TierTable, error) {
	if len(tiers) == 0 {
		return nil, ierr.NewError("tier table is empty").
			Mark(ierr.ErrValidation)
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinRentals < sorted[j].MinRentals
	})

	next := 0
	for i, t := range sorted {
		if t.MinRentals != next {
			return nil, ierr.NewError("tier ranges do not partition the rental counts").
				WithReportableDetails(map[string]any{
					"tier":     t.ID,
					"expected": next,
					"got":      t.MinRentals,
				}).
				Mark(ierr.ErrValidation)
		}
		if t.MaxRentals == nil {
			if i != len(sorted)-1 {
				return nil, ierr.NewError("unbounded tier must be the highest tier").
					WithReportableDetails(map[string]any{"tier": t.ID}).
					Mark(ierr.ErrValidation)
			}
			break
		}
		if *t.MaxRentals < t.MinRentals {
			return nil, ierr.NewError("tier range is inverted").
				WithReportableDetails(map[string]any{"tier": t.ID}).
				Mark(ierr.ErrValidation)
		}
		next = *t.MaxRentals + 1
	}

	last := sorted[len(sorted)-1]
	if last.MaxRentals != nil {
		return nil, ierr.NewError("highest tier must be unbounded").
			WithReportableDetails(map[string]any{"tier": last.ID}).
			Mark(ierr.ErrValidation)
	}

	return &TierTable{tiers: sorted}, nil
}

// DefaultTierTable returns the built-in five-tier loyalty policy
func DefaultTierTable() *TierTable {
	intPtr := func(i int) *int { return &i }
	table, err := NewTierTable([]Tier{
		{
			ID:              types.LoyaltyTierNew,
			MinRentals:      0,
			MaxRentals:      intPtr(2),
			OverageRate:     decimal.NewFromInt(20),
			DiscountPercent: decimal.Zero,
			KmBonusPerDay:   decimal.Zero,
		},
		{
			ID:              types.LoyaltyTierBronze,
			MinRentals:      3,
			MaxRentals:      intPtr(4),
			OverageRate:     decimal.NewFromInt(18),
			DiscountPercent: decimal.NewFromInt(5),
			KmBonusPerDay:   decimal.NewFromInt(25),
		},
		{
			ID:              types.LoyaltyTierSilver,
			MinRentals:      5,
			MaxRentals:      intPtr(9),
			OverageRate:     decimal.NewFromInt(15),
			DiscountPercent: decimal.NewFromInt(10),
			KmBonusPerDay:   decimal.NewFromInt(50),
		},
		{
			ID:              types.LoyaltyTierGold,
			MinRentals:      10,
			MaxRentals:      intPtr(19),
			OverageRate:     decimal.NewFromInt(12),
			DiscountPercent: decimal.NewFromInt(15),
			KmBonusPerDay:   decimal.NewFromInt(75),
		},
		{
			ID:              types.LoyaltyTierPlatinum,
			MinRentals:      20,
			OverageRate:     decimal.NewFromInt(10),
			DiscountPercent: decimal.NewFromInt(20),
			KmBonusPerDay:   decimal.NewFromInt(100),
		},
	})
	if err != nil {
		// The built-in table is validated by tests; failing here means the
		// binary itself is broken.
		panic(err)
	}
	return table
}

// Resolve maps a completed-rental count to its loyalty tier. Boundaries
// belong to the higher tier: 5 rentals is SILVER when SILVER begins at 5.
func (t *TierTable) Resolve(completedRentals int) (Tier, error) {
	if completedRentals < 0 {
		return Tier{}, ierr.NewError("negative rental count").
			WithHint("Completed rental count cannot be negative").
			WithReportableDetails(map[string]any{"completed_rentals": completedRentals}).
			Mark(ierr.ErrValidation)
	}

	for _, tier := range t.tiers {
		if completedRentals < tier.MinRentals {
			break
		}
		if tier.MaxRentals == nil || completedRentals <= *tier.MaxRentals {
			return tier, nil
		}
	}

	// Unreachable for a validated table; fall back to the base tier rather
	// than surfacing a configuration defect to the caller.
	return t.Base(), nil
}

// Base returns the lowest tier
func (t *TierTable) Base() Tier {
	return t.tiers[0]
}

// Next returns the tier above the given one, or nil at the top
func (t *TierTable) Next(id types.LoyaltyTier) *Tier {
	for i, tier := range t.tiers {
		if tier.ID == id && i+1 < len(t.tiers) {
			next := t.tiers[i+1]
			return &next
		}
	}
	return nil
}

// Tiers returns a copy of the ordered tier list
func (t *TierTable) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}
