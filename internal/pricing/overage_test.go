package pricing

import (
	"testing"

	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OverageSuite struct {
	suite.Suite
	table *TierTable
}

func TestOverageSuite(t *testing.T) {
	suite.Run(t, new(OverageSuite))
}

func (s *OverageSuite) SetupTest() {
	s.table = DefaultTierTable()
}

func (s *OverageSuite) TestSilverDiscountedOverage() {
	result, err := s.table.ComputeOverage(OverageParams{
		ActualKm:          decimal.NewFromInt(2000),
		AllowedKm:         decimal.NewFromInt(1750),
		CompletedRentals:  7,
		ApplyTierDiscount: true,
	})
	s.NoError(err)
	s.Equal(types.LoyaltyTierSilver, result.Tier)
	s.True(result.OverageKm.Equal(decimal.NewFromInt(250)))
	s.True(result.RateUsed.Equal(decimal.NewFromInt(15)))
	s.True(result.BaseCharge.Equal(decimal.NewFromInt(3750)))
	s.True(result.DiscountAmount.Equal(decimal.NewFromInt(375)))
	s.True(result.FinalCharge.Equal(decimal.NewFromInt(3375)))
}

func (s *OverageSuite) TestOptedOutPaysBaseRate() {
	// A platinum-count customer who opted out pays the base tier's flat
	// rate with no discount.
	result, err := s.table.ComputeOverage(OverageParams{
		ActualKm:          decimal.NewFromInt(2500),
		AllowedKm:         decimal.NewFromInt(2000),
		CompletedRentals:  25,
		ApplyTierDiscount: false,
	})
	s.NoError(err)
	s.Equal(types.LoyaltyTierNew, result.Tier)
	s.True(result.RateUsed.Equal(decimal.NewFromInt(20)))
	s.True(result.DiscountPercent.IsZero())
	s.True(result.FinalCharge.Equal(decimal.NewFromInt(10000)))
}

func (s *OverageSuite) TestUnderAllowanceIsZero() {
	result, err := s.table.ComputeOverage(OverageParams{
		ActualKm:          decimal.NewFromInt(1200),
		AllowedKm:         decimal.NewFromInt(1750),
		CompletedRentals:  7,
		ApplyTierDiscount: true,
	})
	s.NoError(err)
	s.Equal(types.LoyaltyTierNone, result.Tier)
	s.True(result.OverageKm.IsZero())
	s.True(result.FinalCharge.IsZero())
}

func (s *OverageSuite) TestExactAllowanceIsZero() {
	result, err := s.table.ComputeOverage(OverageParams{
		ActualKm:          decimal.NewFromInt(1750),
		AllowedKm:         decimal.NewFromInt(1750),
		CompletedRentals:  7,
		ApplyTierDiscount: true,
	})
	s.NoError(err)
	s.True(result.FinalCharge.IsZero())
}

func (s *OverageSuite) TestExplicitRateOverridesTier() {
	rate := decimal.NewFromInt(8)
	result, err := s.table.ComputeOverage(OverageParams{
		ActualKm:          decimal.NewFromInt(1100),
		AllowedKm:         decimal.NewFromInt(1000),
		CompletedRentals:  7,
		ApplyTierDiscount: true,
		ExplicitRate:      &rate,
	})
	s.NoError(err)
	s.True(result.RateUsed.Equal(decimal.NewFromInt(8)))
	s.True(result.BaseCharge.Equal(decimal.NewFromInt(800)))
	// Tier discount still applies on top of the explicit rate
	s.True(result.FinalCharge.Equal(decimal.NewFromInt(720)))
}

func (s *OverageSuite) TestInvalidInputs() {
	_, err := s.table.ComputeOverage(OverageParams{
		ActualKm:  decimal.NewFromInt(-1),
		AllowedKm: decimal.NewFromInt(100),
	})
	s.Error(err)

	_, err = s.table.ComputeOverage(OverageParams{
		ActualKm:  decimal.NewFromInt(100),
		AllowedKm: decimal.NewFromInt(-1),
	})
	s.Error(err)

	bad := decimal.NewFromInt(-5)
	_, err = s.table.ComputeOverage(OverageParams{
		ActualKm:     decimal.NewFromInt(200),
		AllowedKm:    decimal.NewFromInt(100),
		ExplicitRate: &bad,
	})
	s.Error(err)
}
