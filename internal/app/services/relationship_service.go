package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/tutorhub/internal/app/auth"
	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/logger"
)

// RelationshipService drives the student-tutor pairing lifecycle.
// Students request, tutors confirm or remove; each transition is keyed
// by the (student, tutor) pair so replays cannot fork state.
type RelationshipService struct {
	relationshipRepo repositories.IRelationshipRepository
	tutorRepo        repositories.ITutorRepository
	studentRepo      repositories.IStudentRepository
	authz            *auth.AuthorizationService
}

// NewRelationshipService creates a new RelationshipService
func NewRelationshipService(
	relationshipRepo repositories.IRelationshipRepository,
	tutorRepo repositories.ITutorRepository,
	studentRepo repositories.IStudentRepository,
	authz *auth.AuthorizationService,
) *RelationshipService {
	return &RelationshipService{
		relationshipRepo: relationshipRepo,
		tutorRepo:        tutorRepo,
		studentRepo:      studentRepo,
		authz:            authz,
	}
}

// RequestTutor records the caller's request toward a tutor. Repeating
// the request is a no-op returning the existing pairing; the second
// return value reports whether this call created it.
func (s *RelationshipService) RequestTutor(ctx context.Context, userID, tutorID int64) (*models.Relationship, bool, error) {
	student, err := s.authz.RequireStudent(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if _, err := s.tutorRepo.GetByID(ctx, tutorID); err != nil {
		if errors.Is(err, apperrors.ErrTutorNotFound) {
			return nil, false, apperrors.NewResourceNotFoundError("tutor not found")
		}
		return nil, false, fmt.Errorf("failed to get tutor: %w", err)
	}

	rel, created, err := s.relationshipRepo.GetOrCreate(ctx, student.ID, tutorID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to request tutor: %w", err)
	}

	if created {
		logger.Info().Int64("studentID", student.ID).Int64("tutorID", tutorID).Msg("Tutoring requested")
	}
	return rel, created, nil
}

// ConfirmStudent activates the pairing between the caller and a student.
// Confirming an already active pairing changes nothing, and confirming
// without a prior request creates the pairing directly as active.
func (s *RelationshipService) ConfirmStudent(ctx context.Context, userID, studentID int64) (*models.Relationship, error) {
	tutor, err := s.authz.RequireTutor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewResourceNotFoundError("student not found")
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	rel, err := s.relationshipRepo.Activate(ctx, studentID, tutor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm student: %w", err)
	}

	logger.Info().Int64("studentID", studentID).Int64("tutorID", tutor.ID).Msg("Pairing confirmed")
	return rel, nil
}

// RemoveStudent deletes the pairing between the caller and a student,
// whether pending or active. Removal of an absent pairing fails, so
// exactly one of two concurrent removals wins.
func (s *RelationshipService) RemoveStudent(ctx context.Context, userID, studentID int64) error {
	tutor, err := s.authz.RequireTutor(ctx, userID)
	if err != nil {
		return err
	}

	err = s.relationshipRepo.DeleteByPair(ctx, studentID, tutor.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRelationshipNotFound) {
			return apperrors.NewResourceNotFoundError("relationship not found")
		}
		return fmt.Errorf("failed to remove student: %w", err)
	}

	logger.Info().Int64("studentID", studentID).Int64("tutorID", tutor.ID).Msg("Pairing removed")
	return nil
}

// ListForUser returns the caller's pairings from their side of the
// ledger, active rows first then by tutor username.
func (s *RelationshipService) ListForUser(ctx context.Context, userID int64) ([]*models.Relationship, error) {
	profile, err := s.authz.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch profile.Role {
	case models.RoleTutor:
		tutor, err := s.tutorRepo.GetByProfileID(ctx, profile.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrTutorNotFound) {
				return nil, apperrors.ErrRoleEntryMissing
			}
			return nil, fmt.Errorf("failed to get tutor entry: %w", err)
		}
		return s.relationshipRepo.ListByTutor(ctx, tutor.ID)
	case models.RoleStudent:
		student, err := s.studentRepo.GetByProfileID(ctx, profile.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				return nil, apperrors.ErrRoleEntryMissing
			}
			return nil, fmt.Errorf("failed to get student entry: %w", err)
		}
		return s.relationshipRepo.ListByStudent(ctx, student.ID)
	default:
		// Accounts without a chosen role have no pairings to show
		return []*models.Relationship{}, nil
	}
}
