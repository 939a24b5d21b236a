package models

import "time"

// Message is a directed message between two accounts. Messages are
// append-only: there is no update or delete.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    int64     `json:"senderId" db:"sender_id"`
	RecipientID int64     `json:"recipientId" db:"recipient_id"`
	Text        string    `json:"text" db:"text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related usernames for display, filled by thread queries
	SenderUsername    string `json:"senderUsername,omitempty"`
	RecipientUsername string `json:"recipientUsername,omitempty"`
}
