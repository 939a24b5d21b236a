package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/auth"
	"github.com/emre/tutorhub/internal/pkg/logger"
	"github.com/emre/tutorhub/internal/pkg/validation"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo    repositories.IUserRepository
	profileRepo repositories.IProfileRepository
	tokenRepo   repositories.ITokenRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	profileRepo repositories.IProfileRepository,
	tokenRepo repositories.ITokenRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
	}
}

// RegisterUser creates a new account with an empty profile
func (s *AuthService) RegisterUser(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if !validation.ValidUsername(req.Username) {
		return nil, apperrors.NewValidationError("username must be 3-150 characters of letters, digits and @/./+/-/_").WithField("username")
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.NewValidationError("passwords do not match").WithField("confirmPassword")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Password: hashedPassword,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil, apperrors.NewValidationError("username is already taken").WithField("username")
		}
		logger.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.Error().Err(err).Str("username", req.Username).Msg("Failed to look up user for login")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshAccessToken rotates a refresh token into a new token pair
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if !stored.Valid(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Single use: the old token dies with the rotation
	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to revoke rotated refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.Revoke(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	role := models.RoleUnset
	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		// Account without a profile row only happens mid-registration
	} else {
		role = profile.Role
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user, role)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}
