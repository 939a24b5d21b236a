package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/tutorhub/internal/app/models"
)

// IMessageRepository defines message database operations
type IMessageRepository interface {
	Create(ctx context.Context, message *models.Message) error

	// ListThread retrieves messages exchanged between two accounts in
	// either direction, oldest first.
	ListThread(ctx context.Context, userID, otherUserID int64) ([]*models.Message, error)
}

// MessageRepository handles database operations for messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO messages (sender_id, recipient_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		message.SenderID, message.RecipientID, message.Text).
		Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// ListThread retrieves the full conversation between two accounts.
// Insertion order breaks creation-time ties so the thread is stable.
func (r *MessageRepository) ListThread(ctx context.Context, userID, otherUserID int64) ([]*models.Message, error) {
	query := squirrel.Select(
		"m.id", "m.sender_id", "m.recipient_id", "m.text", "m.created_at",
		"su.username AS sender_username", "ru.username AS recipient_username",
	).
		From("messages m").
		Join("users su ON m.sender_id = su.id").
		Join("users ru ON m.recipient_id = ru.id").
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"m.sender_id": userID}, squirrel.Eq{"m.recipient_id": otherUserID}},
			squirrel.And{squirrel.Eq{"m.sender_id": otherUserID}, squirrel.Eq{"m.recipient_id": userID}},
		}).
		OrderBy("m.created_at ASC", "m.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Text, &msg.CreatedAt,
			&msg.SenderUsername, &msg.RecipientUsername); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}
