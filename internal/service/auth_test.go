package service

import (
	"testing"

	"github.com/drivestack/drivestack/internal/api/dto"
	"github.com/drivestack/drivestack/internal/auth"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/pricing"
	"github.com/drivestack/drivestack/internal/testutil"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AuthService
	provider auth.Provider
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.provider = auth.NewProvider(s.GetConfig())
	s.service = NewAuthService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		DB:         s.GetDB(),
		TierTable:  pricing.DefaultTierTable(),
		AuthRepo:   stores.AuthRepo,
		UserRepo:   stores.UserRepo,
		TenantRepo: stores.TenantRepo,
	}, s.provider)
}

func (s *AuthServiceSuite) TestSignUpProvisionsTenantAndOwner() {
	resp, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:       "owner@rentals.example",
		Password:    "s3cret-pass",
		CompanyName: "City Rentals",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.TenantID)
	s.Equal(types.UserRoleOwner, resp.Role)

	t, err := s.GetStores().TenantRepo.GetByID(s.GetContext(), resp.TenantID)
	s.NoError(err)
	s.Equal("City Rentals", t.Name)
	s.False(t.RentalPolicy.DailyKmLimit.IsZero())

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), resp.UserID)
	s.NoError(err)
	s.Equal(resp.TenantID, u.TenantID)

	claims, err := s.provider.ValidateToken(s.GetContext(), resp.Token)
	s.NoError(err)
	s.Equal(resp.UserID, claims.UserID)
	s.Equal(resp.TenantID, claims.TenantID)
	s.Equal(types.UserRoleOwner, claims.Role)
}

func (s *AuthServiceSuite) TestSignUpRejectsDuplicateEmail() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@rentals.example",
		Password: "s3cret-pass",
	})
	s.NoError(err)

	_, err = s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@rentals.example",
		Password: "another-pass",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestLogin() {
	signup, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@rentals.example",
		Password: "s3cret-pass",
	})
	s.NoError(err)

	login, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "owner@rentals.example",
		Password: "s3cret-pass",
	})
	s.NoError(err)
	s.Equal(signup.UserID, login.UserID)
	s.Equal(signup.TenantID, login.TenantID)
	s.NotEmpty(login.Token)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@rentals.example",
		Password: "s3cret-pass",
	})
	s.NoError(err)

	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "owner@rentals.example",
		Password: "wrong-password",
	})
	s.Error(err)
	s.True(ierr.IsAuthentication(err))
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "nobody@rentals.example",
		Password: "whatever-pass",
	})
	s.Error(err)
	s.True(ierr.IsAuthentication(err))
}
