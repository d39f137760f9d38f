package auth

import (
	"context"
	"time"

	"github.com/drivestack/drivestack/internal/config"
	"github.com/drivestack/drivestack/internal/domain/auth"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type jwtAuth struct {
	AuthConfig config.AuthConfig
}

func NewJWTAuth(cfg *config.Configuration) *jwtAuth {
	return &jwtAuth{
		AuthConfig: cfg.Auth,
	}
}

func (j *jwtAuth) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	if req.Password == "" {
		return nil, ierr.NewError("password is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}

	userID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER)

	authToken, err := j.generateToken(userID, req.TenantID, req.Role)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &AuthResponse{
		ProviderToken: string(hashedPassword),
		AuthToken:     authToken,
		ID:            userID,
	}, nil
}

func (j *jwtAuth) Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error) {
	err := bcrypt.CompareHashAndPassword([]byte(userAuthInfo.Token), []byte(req.Password))
	if err != nil {
		return nil, ierr.NewError("invalid password").
			WithHint("Invalid password").
			Mark(ierr.ErrValidation)
	}

	authToken, err := j.generateToken(userAuthInfo.UserID, req.TenantID, req.Role)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &AuthResponse{
		ProviderToken: userAuthInfo.Token,
		AuthToken:     authToken,
		ID:            userAuthInfo.UserID,
	}, nil
}

func (j *jwtAuth) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHintf("Unexpected signing method %v", token.Header["alg"]).
				Mark(ierr.ErrAuthentication)
		}
		return []byte(j.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrAuthentication)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrAuthentication)
	}

	userID, userOk := claims["user_id"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user id").
			WithHint("Token missing user id").
			Mark(ierr.ErrAuthentication)
	}

	tenantID, tenantOk := claims["tenant_id"].(string)
	if !tenantOk || tenantID == "" {
		return nil, ierr.NewError("token missing tenant id").
			WithHint("Every actor must be bound to exactly one tenant").
			Mark(ierr.ErrAuthentication)
	}

	role, roleOk := claims["role"].(string)
	if !roleOk || !types.UserRole(role).Validate() {
		return nil, ierr.NewError("token missing role").
			WithHint("Token missing a valid role claim").
			Mark(ierr.ErrAuthentication)
	}

	return &auth.Claims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     types.UserRole(role),
	}, nil
}

func (j *jwtAuth) generateToken(userID, tenantID string, role types.UserRole) (string, error) {
	expiration := time.Now().Add(time.Duration(j.AuthConfig.TokenExpiryHours) * time.Hour)

	claims := jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
		"role":      string(role),
		"exp":       expiration.Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.AuthConfig.Secret))
}
