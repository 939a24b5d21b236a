package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/dberrors"
)

// IStudentRepository defines student entry database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByProfileID(ctx context.Context, profileID int64) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
}

// StudentRepository handles database operations for student entries
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a student entry for a profile
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (profile_id, goals)
		VALUES ($1, $2)
		RETURNING id`,
		student.ProfileID, student.Goals).Scan(&student.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error creating student entry: %w", err)
	}

	return nil
}

// GetByID retrieves a student entry by its ID, including the owner's username
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT s.id, s.profile_id, s.goals, u.username
		FROM students s
		JOIN profiles p ON s.profile_id = p.id
		JOIN users u ON p.user_id = u.id
		WHERE s.id = $1`,
		id).Scan(&student.ID, &student.ProfileID, &student.Goals, &student.Username)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student entry: %w", err)
	}

	return student, nil
}

// GetByProfileID retrieves the student entry owned by a profile
func (r *StudentRepository) GetByProfileID(ctx context.Context, profileID int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, profile_id, goals
		FROM students
		WHERE profile_id = $1`,
		profileID).Scan(&student.ID, &student.ProfileID, &student.Goals)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student entry: %w", err)
	}

	return student, nil
}

// Update overwrites the mutable attributes of a student entry
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	result, err := r.db.Exec(ctx, `
		UPDATE students SET goals = $1 WHERE id = $2`,
		student.Goals, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
