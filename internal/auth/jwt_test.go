package auth

import (
	"context"
	"testing"

	"github.com/drivestack/drivestack/internal/config"
	domainAuth "github.com/drivestack/drivestack/internal/domain/auth"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthRoundTrip(t *testing.T) {
	provider := NewJWTAuth(config.GetDefaultConfig())
	ctx := context.Background()

	signUp, err := provider.SignUp(ctx, AuthRequest{
		TenantID: "tenant-1",
		Email:    "agent@example.com",
		Password: "s3cret",
		Role:     types.UserRoleAgent,
	})
	require.NoError(t, err)
	require.NotEmpty(t, signUp.AuthToken)
	require.NotEmpty(t, signUp.ProviderToken)

	claims, err := provider.ValidateToken(ctx, signUp.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, signUp.ID, claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, types.UserRoleAgent, claims.Role)
}

func TestJWTAuthLogin(t *testing.T) {
	provider := NewJWTAuth(config.GetDefaultConfig())
	ctx := context.Background()

	signUp, err := provider.SignUp(ctx, AuthRequest{
		TenantID: "tenant-1",
		Password: "s3cret",
		Role:     types.UserRoleManager,
	})
	require.NoError(t, err)

	stored := domainAuth.NewAuth(signUp.ID, signUp.ProviderToken)

	login, err := provider.Login(ctx, AuthRequest{
		TenantID: "tenant-1",
		Password: "s3cret",
		Role:     types.UserRoleManager,
	}, stored)
	require.NoError(t, err)
	assert.Equal(t, signUp.ID, login.ID)

	_, err = provider.Login(ctx, AuthRequest{
		TenantID: "tenant-1",
		Password: "wrong",
	}, stored)
	assert.Error(t, err)
}

func TestJWTAuthRejectsForeignTokens(t *testing.T) {
	provider := NewJWTAuth(config.GetDefaultConfig())
	ctx := context.Background()

	_, err := provider.ValidateToken(ctx, "not-a-token")
	assert.Error(t, err)
	assert.True(t, ierr.IsAuthentication(err))

	other := NewJWTAuth(&config.Configuration{Auth: config.AuthConfig{Secret: "other", TokenExpiryHours: 1}})
	signUp, err := other.SignUp(ctx, AuthRequest{
		TenantID: "tenant-1",
		Password: "s3cret",
		Role:     types.UserRoleViewer,
	})
	require.NoError(t, err)

	_, err = provider.ValidateToken(ctx, signUp.AuthToken)
	assert.Error(t, err)
}
