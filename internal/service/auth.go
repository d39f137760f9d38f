package service

import (
	"context"
	"time"

	"github.com/drivestack/drivestack/internal/api/dto"
	"github.com/drivestack/drivestack/internal/auth"
	authdomain "github.com/drivestack/drivestack/internal/domain/auth"
	"github.com/drivestack/drivestack/internal/domain/tenant"
	"github.com/drivestack/drivestack/internal/domain/user"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
)

type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
	provider auth.Provider
}

func NewAuthService(params ServiceParams, provider auth.Provider) AuthService {
	return &authService{ServiceParams: params, provider: provider}
}

// SignUp provisions a new rental company: the tenant, its owner user, and
// the stored credential are created in one transaction so a half-created
// account can never be left behind.
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.UserRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ierr.NewError("email already registered").
			WithHint("An account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	} else if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	companyName := req.CompanyName
	if companyName == "" {
		companyName = req.Email
	}

	t := &tenant.Tenant{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:      companyName,
		Status:    types.StatusPublished,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		RentalPolicy: tenant.RentalPolicy{
			DailyKmLimit:  s.Config.Rental.DefaultDailyKmLimit,
			DepositAmount: s.Config.Rental.DefaultDepositAmount,
			TaxPercent:    s.Config.Rental.DefaultTaxPercent,
		},
	}
	u := user.NewUser(req.Email, types.UserRoleOwner, t.ID)

	authResp, err := s.provider.SignUp(ctx, auth.AuthRequest{
		UserID:   u.ID,
		TenantID: t.ID,
		Email:    req.Email,
		Password: req.Password,
		Role:     u.Role,
	})
	if err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TenantRepo.Create(ctx, t); err != nil {
			return err
		}
		if err := s.UserRepo.Create(ctx, u); err != nil {
			return err
		}
		return s.AuthRepo.CreateAuth(ctx, authdomain.NewAuth(u.ID, authResp.ProviderToken))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("tenant signed up", "tenant_id", t.ID, "user_id", u.ID)
	return &dto.AuthResponse{
		Token:    authResp.AuthToken,
		UserID:   u.ID,
		TenantID: t.ID,
		Role:     u.Role,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	userAuth, err := s.AuthRepo.GetAuthByUserID(ctx, u.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	authResp, err := s.provider.Login(ctx, auth.AuthRequest{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    req.Email,
		Password: req.Password,
		Role:     u.Role,
	}, userAuth)
	if err != nil {
		return nil, invalidCredentials()
	}

	return &dto.AuthResponse{
		Token:    authResp.AuthToken,
		UserID:   u.ID,
		TenantID: u.TenantID,
		Role:     u.Role,
	}, nil
}

// invalidCredentials deliberately does not distinguish unknown emails from
// wrong passwords.
func invalidCredentials() error {
	return ierr.NewError("invalid credentials").
		WithHint("Invalid email or password").
		Mark(ierr.ErrAuthentication)
}
