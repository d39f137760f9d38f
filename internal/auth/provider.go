package auth

import (
	"context"

	"github.com/drivestack/drivestack/internal/config"
	"github.com/drivestack/drivestack/internal/domain/auth"
	"github.com/drivestack/drivestack/internal/types"
)

type AuthRequest struct {
	UserID   string
	TenantID string
	Email    string
	Password string
	Role     types.UserRole
}

type AuthResponse struct {
	// ProviderToken is the stored credential, a bcrypt hash
	ProviderToken string

	// AuthToken is the signed JWT handed to the client
	AuthToken string

	ID string
}

type Provider interface {
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewJWTAuth(cfg)
}
