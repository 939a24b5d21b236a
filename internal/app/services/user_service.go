package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/logger"
)

// UserService handles account administration
type UserService struct {
	userRepo  repositories.IUserRepository
	tokenRepo repositories.ITokenRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, tokenRepo repositories.ITokenRepository) *UserService {
	return &UserService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// List retrieves accounts, staff only
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete removes an account. Cascades take the profile, role entry,
// relationships and messages with it.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.tokenRepo.RevokeAllForUser(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("userID", id).Msg("Failed to revoke tokens before account deletion")
	}

	err := s.userRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewResourceNotFoundError("user not found")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Info().Int64("userID", id).Msg("Account deleted")
	return nil
}
