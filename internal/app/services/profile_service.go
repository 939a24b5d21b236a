package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emre/tutorhub/internal/app/auth"
	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/logger"
	"github.com/emre/tutorhub/internal/pkg/validation"
)

// ProfileService handles role selection and role entry maintenance
type ProfileService struct {
	userRepo    repositories.IUserRepository
	profileRepo repositories.IProfileRepository
	tutorRepo   repositories.ITutorRepository
	studentRepo repositories.IStudentRepository
	authz       *auth.AuthorizationService
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo repositories.IUserRepository,
	profileRepo repositories.IProfileRepository,
	tutorRepo repositories.ITutorRepository,
	studentRepo repositories.IStudentRepository,
	authz *auth.AuthorizationService,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tutorRepo:   tutorRepo,
		studentRepo: studentRepo,
		authz:       authz,
	}
}

// ChooseRole sets the caller's role and creates the matching role entry.
// The first choice is permanent for regular accounts; only admins may
// register again under the other role.
func (s *ProfileService) ChooseRole(ctx context.Context, userID int64, req *dto.ChooseRoleRequest) (*dto.UserResponse, error) {
	role := models.Role(req.Role)
	if !role.Valid() || role == models.RoleAdmin || role == models.RoleUnset {
		return nil, apperrors.NewValidationError("role must be TUTOR or STUDENT").WithField("role")
	}

	profile, err := s.authz.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.CanAssumeRole(role) {
		return nil, apperrors.NewForbiddenError("role is already set and cannot be changed")
	}

	switch role {
	case models.RoleTutor:
		if err := s.createTutorEntry(ctx, profile, req); err != nil {
			return nil, err
		}
	case models.RoleStudent:
		if err := s.createStudentEntry(ctx, profile, req); err != nil {
			return nil, err
		}
	}

	// Admin keeps its ADMIN role even after registering an entry
	if profile.Role != models.RoleAdmin {
		if err := s.profileRepo.UpdateRole(ctx, profile.ID, role); err != nil {
			return nil, fmt.Errorf("failed to update role: %w", err)
		}
		profile.Role = role
	}

	logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("Role selected")
	return s.GetMe(ctx, userID)
}

func (s *ProfileService) createTutorEntry(ctx context.Context, profile *models.Profile, req *dto.ChooseRoleRequest) error {
	rate := req.HourlyRate
	if rate == "" {
		rate = "0.00"
	}
	if !validation.ValidHourlyRate(rate) {
		return apperrors.NewValidationError("hourly rate must be a non-negative decimal with at most two fraction digits").WithField("hourlyRate")
	}
	if req.Experience < 0 {
		return apperrors.NewValidationError("experience cannot be negative").WithField("experience")
	}

	tutor := &models.Tutor{
		ProfileID:  profile.ID,
		Bio:        req.Bio,
		HourlyRate: rate,
		Subject:    req.Subject,
		Experience: req.Experience,
	}
	if err := s.tutorRepo.Create(ctx, tutor); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("tutor entry already exists")
		}
		return fmt.Errorf("failed to create tutor entry: %w", err)
	}
	return nil
}

func (s *ProfileService) createStudentEntry(ctx context.Context, profile *models.Profile, req *dto.ChooseRoleRequest) error {
	student := &models.Student{
		ProfileID: profile.ID,
		Goals:     req.Goals,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("student entry already exists")
		}
		return fmt.Errorf("failed to create student entry: %w", err)
	}
	return nil
}

// UpdateEntry updates the caller's role entry attributes
func (s *ProfileService) UpdateEntry(ctx context.Context, userID int64, req *dto.UpdateEntryRequest) (*dto.UserResponse, error) {
	profile, err := s.authz.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch profile.Role {
	case models.RoleTutor:
		if err := s.updateTutorEntry(ctx, profile, req); err != nil {
			return nil, err
		}
	case models.RoleStudent:
		if err := s.updateStudentEntry(ctx, profile, req); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.NewBadRequestError("choose a role before editing the entry")
	}

	return s.GetMe(ctx, userID)
}

func (s *ProfileService) updateTutorEntry(ctx context.Context, profile *models.Profile, req *dto.UpdateEntryRequest) error {
	tutor, err := s.tutorRepo.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTutorNotFound) {
			return apperrors.ErrRoleEntryMissing
		}
		return fmt.Errorf("failed to get tutor entry: %w", err)
	}

	if req.Bio != nil {
		tutor.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		if !validation.ValidHourlyRate(*req.HourlyRate) {
			return apperrors.NewValidationError("hourly rate must be a non-negative decimal with at most two fraction digits").WithField("hourlyRate")
		}
		tutor.HourlyRate = *req.HourlyRate
	}
	if req.Subject != nil {
		tutor.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Experience != nil {
		if *req.Experience < 0 {
			return apperrors.NewValidationError("experience cannot be negative").WithField("experience")
		}
		tutor.Experience = *req.Experience
	}

	if err := s.tutorRepo.Update(ctx, tutor); err != nil {
		return fmt.Errorf("failed to update tutor entry: %w", err)
	}
	return nil
}

func (s *ProfileService) updateStudentEntry(ctx context.Context, profile *models.Profile, req *dto.UpdateEntryRequest) error {
	student, err := s.studentRepo.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.ErrRoleEntryMissing
		}
		return fmt.Errorf("failed to get student entry: %w", err)
	}

	if req.Goals != nil {
		student.Goals = *req.Goals
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return fmt.Errorf("failed to update student entry: %w", err)
	}
	return nil
}

// GetMe returns the caller's account with profile and role entry
func (s *ProfileService) GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.authz.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var tutor *models.Tutor
	var student *models.Student

	t, err := s.tutorRepo.GetByProfileID(ctx, profile.ID)
	if err == nil {
		tutor = t
	} else if !errors.Is(err, apperrors.ErrTutorNotFound) {
		return nil, fmt.Errorf("failed to get tutor entry: %w", err)
	}

	st, err := s.studentRepo.GetByProfileID(ctx, profile.ID)
	if err == nil {
		student = st
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, fmt.Errorf("failed to get student entry: %w", err)
	}

	resp := dto.ToUserResponse(user, profile, tutor, student)
	return &resp, nil
}
