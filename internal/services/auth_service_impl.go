package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"convodesk/internal/auth"
	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"
	"convodesk/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Auth Service Implementation
// ===========================================================================

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// hashToken creates SHA256 hash of token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Login authenticates user with email and password
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error("find user by email failed",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("generate token failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	// Store hashed refresh token so a stolen DB dump cannot mint sessions
	tokenHash := hashToken(tokens.RefreshToken)
	user.RefreshTokenHash = &tokenHash
	user.UpdateLastSeen()

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("save refresh token hash failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		// Login still succeeds; refresh will fail until next login
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return &LoginResult{
		User: user,
		Tokens: &TokenPair{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresIn:    900, // 15 minutes
		},
	}, nil
}

// RefreshTokens generates new token pair using refresh token
func (s *authServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	// Compare against the stored hash; a mismatch means the token was
	// rotated away or revoked
	tokenHash := hashToken(refreshToken)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != tokenHash {
		s.logger.Warn("refresh token hash mismatch - token possibly revoked",
			zap.String("user_id", user.ID.String()),
		)
		return nil, apperrors.ErrInvalidToken
	}

	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("generate token failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	// Token rotation: old refresh token dies here
	newTokenHash := hashToken(tokens.RefreshToken)
	user.RefreshTokenHash = &newTokenHash

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("update refresh token hash failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
	}

	return &LoginResult{
		User: user,
		Tokens: &TokenPair{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresIn:    900,
		},
	}, nil
}

// GetUserByID gets user by ID
func (s *authServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

// RevokeRefreshToken invalidates refresh token (for logout)
func (s *authServiceImpl) RevokeRefreshToken(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrNotFound
	}

	user.RefreshTokenHash = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	s.logger.Info("refresh token revoked",
		zap.String("user_id", userID.String()),
	)

	return nil
}
