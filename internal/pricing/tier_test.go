package pricing

import (
	"testing"

	"github.com/drivestack/drivestack/internal/types"
	"github.com/stretchr/testify/suite"
)

type TierTableSuite struct {
	suite.Suite
	table *TierTable
}

func TestTierTableSuite(t *testing.T) {
	suite.Run(t, new(TierTableSuite))
}

func (s *TierTableSuite) SetupTest() {
	s.table = DefaultTierTable()
}

func (s *TierTableSuite) TestResolveBoundaries() {
	testCases := []struct {
		name             string
		completedRentals int
		expectedTier     types.LoyaltyTier
	}{
		{"zero rentals is new", 0, types.LoyaltyTierNew},
		{"top of new range", 2, types.LoyaltyTierNew},
		{"bronze lower bound", 3, types.LoyaltyTierBronze},
		{"bronze upper bound", 4, types.LoyaltyTierBronze},
		{"silver lower bound goes to higher tier", 5, types.LoyaltyTierSilver},
		{"silver upper bound", 9, types.LoyaltyTierSilver},
		{"gold lower bound", 10, types.LoyaltyTierGold},
		{"gold upper bound", 19, types.LoyaltyTierGold},
		{"platinum lower bound", 20, types.LoyaltyTierPlatinum},
		{"platinum is unbounded", 1000, types.LoyaltyTierPlatinum},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tier, err := s.table.Resolve(tc.completedRentals)
			s.NoError(err)
			s.Equal(tc.expectedTier, tier.ID)
		})
	}
}

func (s *TierTableSuite) TestResolveNegativeCount() {
	_, err := s.table.Resolve(-1)
	s.Error(err)
}

func (s *TierTableSuite) TestNewTierTableRejectsGaps() {
	five := 5
	_, err := NewTierTable([]Tier{
		{ID: types.LoyaltyTierNew, MinRentals: 0, MaxRentals: &five},
		{ID: types.LoyaltyTierSilver, MinRentals: 7},
	})
	s.Error(err)
}

func (s *TierTableSuite) TestNewTierTableRejectsOverlaps() {
	five := 5
	_, err := NewTierTable([]Tier{
		{ID: types.LoyaltyTierNew, MinRentals: 0, MaxRentals: &five},
		{ID: types.LoyaltyTierSilver, MinRentals: 4},
	})
	s.Error(err)
}

func (s *TierTableSuite) TestNewTierTableRejectsBoundedTop() {
	two := 2
	five := 5
	_, err := NewTierTable([]Tier{
		{ID: types.LoyaltyTierNew, MinRentals: 0, MaxRentals: &two},
		{ID: types.LoyaltyTierSilver, MinRentals: 3, MaxRentals: &five},
	})
	s.Error(err)
}

func (s *TierTableSuite) TestNewTierTableRejectsEmpty() {
	_, err := NewTierTable(nil)
	s.Error(err)
}

func (s *TierTableSuite) TestNext() {
	next := s.table.Next(types.LoyaltyTierSilver)
	s.NotNil(next)
	s.Equal(types.LoyaltyTierGold, next.ID)

	s.Nil(s.table.Next(types.LoyaltyTierPlatinum))
}

func (s *TierTableSuite) TestBase() {
	s.Equal(types.LoyaltyTierNew, s.table.Base().ID)
}
