package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/dberrors"
)

// ITutorRepository defines tutor entry database operations
type ITutorRepository interface {
	Create(ctx context.Context, tutor *models.Tutor) error
	GetByID(ctx context.Context, id int64) (*models.Tutor, error)
	GetByProfileID(ctx context.Context, profileID int64) (*models.Tutor, error)
	Update(ctx context.Context, tutor *models.Tutor) error
	List(ctx context.Context, subject, maxRate string, limit, offset int) ([]*models.Tutor, error)
}

// TutorRepository handles database operations for tutor entries
type TutorRepository struct {
	db *pgxpool.Pool
}

// NewTutorRepository creates a new TutorRepository
func NewTutorRepository(db *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{db: db}
}

// Create inserts a tutor entry for a profile
func (r *TutorRepository) Create(ctx context.Context, tutor *models.Tutor) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO tutors (profile_id, bio, hourly_rate, subject, experience)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING id`,
		tutor.ProfileID, tutor.Bio, tutor.HourlyRate, tutor.Subject, tutor.Experience).
		Scan(&tutor.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error creating tutor entry: %w", err)
	}

	return nil
}

// GetByID retrieves a tutor entry by its ID, including the owner's username
func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*models.Tutor, error) {
	tutor := &models.Tutor{}
	err := r.db.QueryRow(ctx, `
		SELECT t.id, t.profile_id, t.bio, t.hourly_rate::text, t.subject, t.experience, u.username
		FROM tutors t
		JOIN profiles p ON t.profile_id = p.id
		JOIN users u ON p.user_id = u.id
		WHERE t.id = $1`,
		id).Scan(
		&tutor.ID, &tutor.ProfileID, &tutor.Bio, &tutor.HourlyRate,
		&tutor.Subject, &tutor.Experience, &tutor.Username)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTutorNotFound
		}
		return nil, fmt.Errorf("error retrieving tutor entry: %w", err)
	}

	return tutor, nil
}

// GetByProfileID retrieves the tutor entry owned by a profile
func (r *TutorRepository) GetByProfileID(ctx context.Context, profileID int64) (*models.Tutor, error) {
	tutor := &models.Tutor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, profile_id, bio, hourly_rate::text, subject, experience
		FROM tutors
		WHERE profile_id = $1`,
		profileID).Scan(
		&tutor.ID, &tutor.ProfileID, &tutor.Bio, &tutor.HourlyRate,
		&tutor.Subject, &tutor.Experience)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTutorNotFound
		}
		return nil, fmt.Errorf("error retrieving tutor entry: %w", err)
	}

	return tutor, nil
}

// Update overwrites the mutable attributes of a tutor entry
func (r *TutorRepository) Update(ctx context.Context, tutor *models.Tutor) error {
	result, err := r.db.Exec(ctx, `
		UPDATE tutors
		SET bio = $1, hourly_rate = $2::numeric, subject = $3, experience = $4
		WHERE id = $5`,
		tutor.Bio, tutor.HourlyRate, tutor.Subject, tutor.Experience, tutor.ID)
	if err != nil {
		return fmt.Errorf("error updating tutor entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTutorNotFound
	}

	return nil
}

// List retrieves tutor entries for the public directory with optional
// subject and max-rate filters, ordered by username
func (r *TutorRepository) List(ctx context.Context, subject, maxRate string, limit, offset int) ([]*models.Tutor, error) {
	queryBuilder := squirrel.Select(
		"t.id", "t.profile_id", "t.bio", "t.hourly_rate::text", "t.subject", "t.experience",
		"u.username",
	).
		From("tutors t").
		Join("profiles p ON t.profile_id = p.id").
		Join("users u ON p.user_id = u.id").
		OrderBy("u.username ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	if subject != "" {
		queryBuilder = queryBuilder.Where("t.subject ILIKE ?", "%"+subject+"%")
	}

	if maxRate != "" {
		queryBuilder = queryBuilder.Where("t.hourly_rate <= ?::numeric", maxRate)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var tutors []*models.Tutor
	for rows.Next() {
		tutor := &models.Tutor{}
		if err := rows.Scan(
			&tutor.ID, &tutor.ProfileID, &tutor.Bio, &tutor.HourlyRate,
			&tutor.Subject, &tutor.Experience, &tutor.Username); err != nil {
			return nil, fmt.Errorf("error scanning tutor row: %w", err)
		}
		tutors = append(tutors, tutor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tutor rows: %w", err)
	}

	return tutors, nil
}
