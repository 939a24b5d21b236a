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
)

// IRelationshipRepository defines relationship database operations
type IRelationshipRepository interface {
	// GetOrCreate atomically inserts a pending row for the pair or
	// returns the existing one. The second return value reports whether
	// a new row was created.
	GetOrCreate(ctx context.Context, studentID, tutorID int64) (*models.Relationship, bool, error)

	// Activate upserts the pair as active. An existing pending row is
	// confirmed; a missing row is created directly as active.
	Activate(ctx context.Context, studentID, tutorID int64) (*models.Relationship, error)

	GetByPair(ctx context.Context, studentID, tutorID int64) (*models.Relationship, error)
	DeleteByPair(ctx context.Context, studentID, tutorID int64) error
	ListByTutor(ctx context.Context, tutorID int64) ([]*models.Relationship, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Relationship, error)

	// ActiveBetweenAccounts reports whether an active relationship links
	// the tutor-side account to the student-side account, in that
	// orientation.
	ActiveBetweenAccounts(ctx context.Context, tutorUserID, studentUserID int64) (bool, error)
}

// RelationshipRepository handles database operations for relationships
type RelationshipRepository struct {
	db *pgxpool.Pool
}

// NewRelationshipRepository creates a new RelationshipRepository
func NewRelationshipRepository(db *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

const relationshipColumns = "id, student_id, tutor_id, is_active, created_at"

func scanRelationship(row pgx.Row) (*models.Relationship, error) {
	rel := &models.Relationship{}
	err := row.Scan(&rel.ID, &rel.StudentID, &rel.TutorID, &rel.IsActive, &rel.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// GetOrCreate inserts a pending relationship for the pair, or fetches the
// existing row when the pair already has one. The insert-or-nothing plus
// refetch relies on the unique constraint, so two concurrent calls for the
// same pair can never create two rows.
func (r *RelationshipRepository) GetOrCreate(ctx context.Context, studentID, tutorID int64) (*models.Relationship, bool, error) {
	rel, err := scanRelationship(r.db.QueryRow(ctx, `
		INSERT INTO relationships (student_id, tutor_id, is_active)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (student_id, tutor_id) DO NOTHING
		RETURNING `+relationshipColumns,
		studentID, tutorID))
	if err == nil {
		return rel, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("error creating relationship: %w", err)
	}

	// Conflict: the row already exists, fetch it
	rel, err = r.GetByPair(ctx, studentID, tutorID)
	if err != nil {
		return nil, false, err
	}

	return rel, false, nil
}

// Activate upserts the relationship as active
func (r *RelationshipRepository) Activate(ctx context.Context, studentID, tutorID int64) (*models.Relationship, error) {
	rel, err := scanRelationship(r.db.QueryRow(ctx, `
		INSERT INTO relationships (student_id, tutor_id, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (student_id, tutor_id) DO UPDATE SET is_active = TRUE
		RETURNING `+relationshipColumns,
		studentID, tutorID))
	if err != nil {
		return nil, fmt.Errorf("error activating relationship: %w", err)
	}

	return rel, nil
}

// GetByPair retrieves the relationship row for a (student, tutor) pair
func (r *RelationshipRepository) GetByPair(ctx context.Context, studentID, tutorID int64) (*models.Relationship, error) {
	rel, err := scanRelationship(r.db.QueryRow(ctx, `
		SELECT `+relationshipColumns+`
		FROM relationships
		WHERE student_id = $1 AND tutor_id = $2`,
		studentID, tutorID))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("error retrieving relationship: %w", err)
	}

	return rel, nil
}

// DeleteByPair removes the relationship row for a (student, tutor) pair
func (r *RelationshipRepository) DeleteByPair(ctx context.Context, studentID, tutorID int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM relationships
		WHERE student_id = $1 AND tutor_id = $2`,
		studentID, tutorID)
	if err != nil {
		return fmt.Errorf("error deleting relationship: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRelationshipNotFound
	}

	return nil
}

// listQuery builds the dashboard listing with both usernames attached,
// active rows first, then alphabetical by tutor username.
func (r *RelationshipRepository) listQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.student_id", "r.tutor_id", "r.is_active", "r.created_at",
		"tu.username AS tutor_username", "su.username AS student_username",
	).
		From("relationships r").
		Join("tutors t ON r.tutor_id = t.id").
		Join("profiles tp ON t.profile_id = tp.id").
		Join("users tu ON tp.user_id = tu.id").
		Join("students s ON r.student_id = s.id").
		Join("profiles sp ON s.profile_id = sp.id").
		Join("users su ON sp.user_id = su.id").
		OrderBy("r.is_active DESC", "tu.username ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *RelationshipRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Relationship, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var relationships []*models.Relationship
	for rows.Next() {
		rel := &models.Relationship{}
		if err := rows.Scan(
			&rel.ID, &rel.StudentID, &rel.TutorID, &rel.IsActive, &rel.CreatedAt,
			&rel.TutorUsername, &rel.StudentUsername); err != nil {
			return nil, fmt.Errorf("error scanning relationship row: %w", err)
		}
		relationships = append(relationships, rel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relationship rows: %w", err)
	}

	return relationships, nil
}

// ListByTutor retrieves all relationships on a tutor entry
func (r *RelationshipRepository) ListByTutor(ctx context.Context, tutorID int64) ([]*models.Relationship, error) {
	return r.list(ctx, r.listQuery().Where("r.tutor_id = ?", tutorID))
}

// ListByStudent retrieves all relationships on a student entry
func (r *RelationshipRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Relationship, error) {
	return r.list(ctx, r.listQuery().Where("r.student_id = ?", studentID))
}

// ActiveBetweenAccounts checks for an active relationship with the first
// account on the tutor side and the second on the student side.
func (r *RelationshipRepository) ActiveBetweenAccounts(ctx context.Context, tutorUserID, studentUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM relationships r
			JOIN tutors t ON r.tutor_id = t.id
			JOIN profiles tp ON t.profile_id = tp.id
			JOIN students s ON r.student_id = s.id
			JOIN profiles sp ON s.profile_id = sp.id
			WHERE r.is_active AND tp.user_id = $1 AND sp.user_id = $2
		)`,
		tutorUserID, studentUserID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking active relationship: %w", err)
	}

	return exists, nil
}
