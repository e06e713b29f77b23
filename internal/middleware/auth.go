package middleware

import (
	"errors"
	"net/http"
	"strings"

	"convodesk/internal/auth"
	"convodesk/internal/dto"
	"convodesk/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===========================================================================
// Auth Middleware
// Protect routes with JWT authentication. Every request downstream of this
// middleware carries a derived Actor: the only identity shape the engine
// and services evaluate.
// ===========================================================================

// Context keys for auth data
const (
	ContextKeyUserID = "user_id"
	ContextKeyActor  = "actor"
	ContextKeyClaims = "claims"
)

// AuthMiddleware verifies the JWT from cookie or header
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. First try to get token from cookie (httpOnly)
		if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		// 2. Fallback to Authorization header (for API clients)
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					tokenString = parts[1]
				}
			}
		}

		// 3. No token found
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, dto.Error("UNAUTHORIZED", "Authentication required"))
			c.Abort()
			return
		}

		// 4. Validate token
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, dto.Error("TOKEN_EXPIRED", "Token has expired"))
			} else {
				c.JSON(http.StatusUnauthorized, dto.Error("INVALID_TOKEN", "Invalid token"))
			}
			c.Abort()
			return
		}

		// 5. Derive the actor and store it in context
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyActor, claims.Actor())
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// RequireRole restricts the route to the given roles
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(http.StatusForbidden, dto.Error("FORBIDDEN", "Access denied"))
			c.Abort()
			return
		}

		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, dto.Error("FORBIDDEN", "Insufficient permissions"))
		c.Abort()
	}
}

// RequireAdmin requires admin or superadmin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, models.RoleSuperadmin)
}

// RequireSuperadmin requires superadmin role
func RequireSuperadmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperadmin)
}

// ===========================================================================
// Helper functions to read auth data from context
// ===========================================================================

// GetUserID returns the authenticated user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	id, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	return id.(uuid.UUID), true
}

// GetActor returns the derived actor from context
func GetActor(c *gin.Context) (models.Actor, bool) {
	actor, exists := c.Get(ContextKeyActor)
	if !exists {
		return models.Actor{}, false
	}
	return actor.(models.Actor), true
}

// GetClaims returns the full token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	claims, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	return claims.(*auth.Claims), true
}
