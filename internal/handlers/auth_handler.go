package handlers

import (
	"errors"
	"net/http"

	"convodesk/internal/dto"
	apperrors "convodesk/internal/errors"
	"convodesk/internal/middleware"
	"convodesk/internal/models"
	"convodesk/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Auth Handler
// Handle authentication endpoints: login, refresh, me, logout
// ===========================================================================

// AuthHandler handles auth endpoints
type AuthHandler struct {
	authService services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService services.AuthService,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ===========================================================================
// Response DTOs
// ===========================================================================

// LoginResponse response after login
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int           `json:"expires_in"`
	User         *UserResponse `json:"user"`
}

// UserResponse user data (no password)
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	AccountID *string `json:"account_id,omitempty"`
}

func toUserResponse(u *models.User) *UserResponse {
	resp := &UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
	if u.AccountID != nil {
		s := u.AccountID.String()
		resp.AccountID = &s
	}
	return resp
}

// ===========================================================================
// Handlers
// ===========================================================================

// Login authenticates a user
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Error("INVALID_CREDENTIALS", "Email or password is incorrect"))
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Error("INTERNAL_ERROR", "An internal error occurred"))
		return
	}

	// httpOnly cookies keep tokens away from page scripts
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", result.Tokens.AccessToken, result.Tokens.ExpiresIn, "/", "", false, true)
	c.SetCookie("refresh_token", result.Tokens.RefreshToken, 604800, "/", "", false, true)

	respondOK(c, LoginResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresIn:    result.Tokens.ExpiresIn,
		User:         toUserResponse(result.User),
	})
}

// Refresh rotates the token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	_ = c.ShouldBindJSON(&req)

	// Body first, cookie as fallback
	token := req.RefreshToken
	if token == "" {
		if cookie, err := c.Cookie("refresh_token"); err == nil {
			token = cookie
		}
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "refresh token is required"))
		return
	}

	result, err := h.authService.RefreshTokens(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", result.Tokens.AccessToken, result.Tokens.ExpiresIn, "/", "", false, true)
	c.SetCookie("refresh_token", result.Tokens.RefreshToken, 604800, "/", "", false, true)

	respondOK(c, LoginResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresIn:    result.Tokens.ExpiresIn,
		User:         toUserResponse(result.User),
	})
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("UNAUTHORIZED", "Authentication required"))
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toUserResponse(user))
}

// Logout revokes the refresh token and clears cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, ok := middleware.GetUserID(c); ok {
		if err := h.authService.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
			h.logger.Warn("revoke refresh token failed", zap.Error(err))
		}
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)

	respondOK(c, gin.H{"message": "logged out"})
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/me", authMiddleware, h.Me)
		auth.POST("/logout", authMiddleware, h.Logout)
	}
}
