package service

import (
	"testing"

	"github.com/drivestack/drivestack/internal/api/dto"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/pricing"
	"github.com/drivestack/drivestack/internal/testutil"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewCustomerService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		TierTable:    pricing.DefaultTierTable(),
		CustomerRepo: stores.CustomerRepo,
	})
}

func (s *CustomerServiceSuite) TestCreateCustomerDefaultsToTierPricing() {
	resp, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{
		Name:  "Jamie Fischer",
		Email: "jamie@example.com",
	})
	s.NoError(err)
	s.True(resp.ApplyTierDiscount)
	s.Equal(types.LoyaltyTierNew, resp.Tier)
	s.Equal(0, resp.TotalRentals)
}

func (s *CustomerServiceSuite) TestCreateCustomerCanOptOut() {
	resp, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{
		Name:              "Corporate Account",
		ApplyTierDiscount: lo.ToPtr(false),
	})
	s.NoError(err)
	s.False(resp.ApplyTierDiscount)
}

func (s *CustomerServiceSuite) TestUpdateCustomerBlacklist() {
	created, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{Name: "X"})
	s.NoError(err)

	updated, err := s.service.UpdateCustomer(s.GetContext(), created.ID, &dto.UpdateCustomerRequest{
		Blacklisted: lo.ToPtr(true),
	})
	s.NoError(err)
	s.True(updated.Blacklisted)
}

func (s *CustomerServiceSuite) TestTierDerivedOnEveryRead() {
	created, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{Name: "X"})
	s.NoError(err)

	c, err := s.GetStores().CustomerRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	c.TotalRentals = 12
	s.NoError(s.GetStores().CustomerRepo.Update(s.GetContext(), c))

	got, err := s.service.GetCustomer(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.LoyaltyTierGold, got.Tier)
}

func (s *CustomerServiceSuite) TestGetTierInfo() {
	created, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{Name: "X"})
	s.NoError(err)

	c, err := s.GetStores().CustomerRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	c.TotalRentals = 7
	s.NoError(s.GetStores().CustomerRepo.Update(s.GetContext(), c))

	info, err := s.service.GetTierInfo(s.GetContext(), created.ID)
	s.NoError(err)

	s.Equal(types.LoyaltyTierSilver, info.Tier)
	s.Equal(7, info.TotalRentals)
	s.Equal("15", info.Benefits.OverageRate.String())
	s.Equal("10", info.Benefits.DiscountPercent.String())
	s.Equal("50", info.Benefits.KmBonusPerDay.String())

	s.Require().NotNil(info.NextTier)
	s.Equal(types.LoyaltyTierGold, info.NextTier.TierID)
	s.Equal(10, info.NextTier.MinRentals)
	s.Equal(3, info.NextTier.RentalsRemaining)
}

func (s *CustomerServiceSuite) TestGetTierInfoAtTopTier() {
	created, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{Name: "X"})
	s.NoError(err)

	c, err := s.GetStores().CustomerRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	c.TotalRentals = 40
	s.NoError(s.GetStores().CustomerRepo.Update(s.GetContext(), c))

	info, err := s.service.GetTierInfo(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.LoyaltyTierPlatinum, info.Tier)
	s.Nil(info.NextTier)
}

func (s *CustomerServiceSuite) TestGetTierInfoUnknownCustomer() {
	_, err := s.service.GetTierInfo(s.GetContext(), "cust_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
