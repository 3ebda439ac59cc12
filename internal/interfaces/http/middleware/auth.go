// Package middleware contains the gin middleware chain: auth, recovery,
// logging, CORS and rate limiting.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lutrii-inc/lutrii/internal/infrastructure/auth"
	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the caller's ledger
// address and role on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, apperrors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, apperrors.NewUnauthorizedError("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, apperrors.NewUnauthorizedError("invalid token type"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAccountAddress, claims.Address)
		c.Set(constants.ContextKeyRole, string(claims.Role))

		c.Next()
	}
}

// RequireAdmin restricts a route to the platform authority.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyRole)
		if role != constants.RoleAdmin {
			utils.ErrorResponse(c, apperrors.NewForbiddenError("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerAddress returns the authenticated ledger address for the request.
func CallerAddress(c *gin.Context) string {
	return c.GetString(constants.ContextKeyAccountAddress)
}
