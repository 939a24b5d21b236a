package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/logger"
)

// Common errors specific to authorization that aren't in the central apperrors
var (
	ErrNotTutor   = errors.New("only tutors can perform this action")
	ErrNotStudent = errors.New("only students can perform this action")
)

// AuthorizationService resolves the caller's role entry and enforces
// role-gated access
type AuthorizationService struct {
	profileRepo repositories.IProfileRepository
	tutorRepo   repositories.ITutorRepository
	studentRepo repositories.IStudentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	profileRepo repositories.IProfileRepository,
	tutorRepo repositories.ITutorRepository,
	studentRepo repositories.IStudentRepository,
) *AuthorizationService {
	return &AuthorizationService{
		profileRepo: profileRepo,
		tutorRepo:   tutorRepo,
		studentRepo: studentRepo,
	}
}

// GetProfile returns the profile attached to an account
func (s *AuthorizationService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting profile by user ID")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// RequireTutor resolves the caller's tutor entry or rejects the call.
// A caller whose role is not TUTOR fails with a permission error; a TUTOR
// role without an entry row means the account is half-provisioned.
func (s *AuthorizationService) RequireTutor(ctx context.Context, userID int64) (*models.Tutor, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.Role != models.RoleTutor {
		return nil, apperrors.NewForbiddenError(ErrNotTutor.Error())
	}

	tutor, err := s.tutorRepo.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTutorNotFound) {
			logger.Warn().Int64("userID", userID).Msg("Tutor entry missing for profile with tutor role")
			return nil, apperrors.ErrRoleEntryMissing
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting tutor entry")
		return nil, fmt.Errorf("failed to get tutor entry: %w", err)
	}

	return tutor, nil
}

// RequireStudent resolves the caller's student entry or rejects the call
func (s *AuthorizationService) RequireStudent(ctx context.Context, userID int64) (*models.Student, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError(ErrNotStudent.Error())
	}

	student, err := s.studentRepo.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			logger.Warn().Int64("userID", userID).Msg("Student entry missing for profile with student role")
			return nil, apperrors.ErrRoleEntryMissing
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting student entry")
		return nil, fmt.Errorf("failed to get student entry: %w", err)
	}

	return student, nil
}
