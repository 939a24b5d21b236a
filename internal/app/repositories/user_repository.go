package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/db"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/dberrors"
)

// IUserRepository defines user-related database operations
type IUserRepository interface {
	// CreateWithProfile inserts a user and its empty profile atomically.
	CreateWithProfile(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithProfile inserts a new user account together with its profile.
// Profile creation is a side effect of account creation, never a separate
// user-facing step.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, password, is_staff)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			user.Username, user.Password, user.IsStaff).
			Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
				return apperrors.ErrUsernameAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (user_id, role)
			VALUES ($1, $2)`,
			user.ID, models.RoleUnset)
		if err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, is_staff, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Username, &user.Password, &user.IsStaff,
		&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, is_staff, created_at, updated_at
		FROM users
		WHERE username = $1`,
		username).Scan(
		&user.ID, &user.Username, &user.Password, &user.IsStaff,
		&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}

	return exists, nil
}

// List retrieves accounts ordered by username
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.username, u.password, u.is_staff, u.created_at, u.updated_at,
		       p.id, p.role
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		ORDER BY u.username ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		profile := &models.Profile{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Password, &user.IsStaff,
			&user.CreatedAt, &user.UpdatedAt,
			&profile.ID, &profile.Role); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		profile.UserID = user.ID
		user.Profile = profile
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Delete removes a user account. Profiles, role entries, relationships
// and messages referencing it go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
