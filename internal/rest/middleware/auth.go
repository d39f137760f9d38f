package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/drivestack/drivestack/internal/auth"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthenticateMiddleware authenticates requests carrying a JWT in the
// Authorization header as a Bearer token. It sets the user ID, tenant ID,
// and claim-level role in the request context for downstream handlers.
func AuthenticateMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := provider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims == nil || claims.UserID == "" || claims.TenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = types.SetUserID(ctx, claims.UserID)
		ctx = types.SetTenantID(ctx, claims.TenantID)
		ctx = types.SetUserRole(ctx, claims.Role)

		environmentID := c.GetHeader(types.HeaderEnvironment)
		if environmentID != "" {
			ctx = context.WithValue(ctx, types.CtxEnvironmentID, environmentID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
