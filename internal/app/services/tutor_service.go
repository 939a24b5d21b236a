package services

import (
	"context"
	"fmt"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/validation"
)

// TutorService exposes the public tutor directory
type TutorService struct {
	tutorRepo repositories.ITutorRepository
}

// NewTutorService creates a new TutorService
func NewTutorService(tutorRepo repositories.ITutorRepository) *TutorService {
	return &TutorService{tutorRepo: tutorRepo}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// List retrieves tutors matching the directory filters
func (s *TutorService) List(ctx context.Context, req *dto.ListTutorsRequest) ([]*models.Tutor, error) {
	if req.MaxRate != "" && !validation.ValidHourlyRate(req.MaxRate) {
		return nil, apperrors.NewValidationError("maxRate must be a non-negative decimal with at most two fraction digits").WithField("maxRate")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	tutors, err := s.tutorRepo.List(ctx, req.Subject, req.MaxRate, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}

	return tutors, nil
}

// GetByID retrieves a single tutor entry
func (s *TutorService) GetByID(ctx context.Context, id int64) (*models.Tutor, error) {
	return s.tutorRepo.GetByID(ctx, id)
}
