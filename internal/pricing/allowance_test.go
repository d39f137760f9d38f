package pricing

import (
	"testing"

	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AllowanceSuite struct {
	suite.Suite
	table *TierTable
}

func TestAllowanceSuite(t *testing.T) {
	suite.Run(t, new(AllowanceSuite))
}

func (s *AllowanceSuite) SetupTest() {
	s.table = DefaultTierTable()
}

func (s *AllowanceSuite) TestSilverBonusAppliedPerDay() {
	result, err := s.table.ComputeAllowance(AllowanceParams{
		BaseDailyKmLimit: decimal.NewFromInt(300),
		TotalDays:        5,
		CompletedRentals: 7,
		ApplyBonus:       true,
	})
	s.NoError(err)
	s.Equal(types.LoyaltyTierSilver, result.Tier)
	s.True(result.KmBonusPerDay.Equal(decimal.NewFromInt(50)))
	s.True(result.TotalDailyKmLimit.Equal(decimal.NewFromInt(350)))
	s.True(result.TotalKmAllowed.Equal(decimal.NewFromInt(1750)))
}

func (s *AllowanceSuite) TestBonusOptOut() {
	result, err := s.table.ComputeAllowance(AllowanceParams{
		BaseDailyKmLimit: decimal.NewFromInt(300),
		TotalDays:        5,
		CompletedRentals: 7,
		ApplyBonus:       false,
	})
	s.NoError(err)
	s.True(result.KmBonusPerDay.IsZero())
	s.True(result.TotalKmAllowed.Equal(decimal.NewFromInt(1500)))
}

func (s *AllowanceSuite) TestNewCustomerGetsNoBonus() {
	result, err := s.table.ComputeAllowance(AllowanceParams{
		BaseDailyKmLimit: decimal.NewFromInt(200),
		TotalDays:        3,
		CompletedRentals: 1,
		ApplyBonus:       true,
	})
	s.NoError(err)
	s.Equal(types.LoyaltyTierNew, result.Tier)
	s.True(result.KmBonusPerDay.IsZero())
	s.True(result.TotalKmAllowed.Equal(decimal.NewFromInt(600)))
}

func (s *AllowanceSuite) TestInvalidInputs() {
	_, err := s.table.ComputeAllowance(AllowanceParams{
		BaseDailyKmLimit: decimal.NewFromInt(300),
		TotalDays:        0,
		CompletedRentals: 1,
	})
	s.Error(err)

	_, err = s.table.ComputeAllowance(AllowanceParams{
		BaseDailyKmLimit: decimal.NewFromInt(-1),
		TotalDays:        2,
		CompletedRentals: 1,
	})
	s.Error(err)

	_, err = s.table.ComputeAllowance(AllowanceParams{
		BaseDailyKmLimit: decimal.NewFromInt(300),
		TotalDays:        2,
		CompletedRentals: -3,
	})
	s.Error(err)
}
