package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
)

// IProfileRepository defines profile-related database operations
type IProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateRole(ctx context.Context, profileID int64, role models.Role) error
}

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves the profile owned by a user account
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	profile := &models.Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, role
		FROM profiles
		WHERE user_id = $1`,
		userID).Scan(&profile.ID, &profile.UserID, &profile.Role)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return profile, nil
}

// UpdateRole sets the role on a profile
func (r *ProfileRepository) UpdateRole(ctx context.Context, profileID int64, role models.Role) error {
	result, err := r.db.Exec(ctx, `
		UPDATE profiles SET role = $1 WHERE id = $2`,
		role, profileID)
	if err != nil {
		return fmt.Errorf("error updating profile role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
