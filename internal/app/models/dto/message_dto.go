package dto

import (
	"time"

	"github.com/emre/tutorhub/internal/app/models"
)

// SendMessageRequest posts a message to a conversation
type SendMessageRequest struct {
	Text string `json:"text" binding:"required" example:"Hi, are you free on Tuesday?"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID                int64     `json:"id" example:"1"`
	SenderID          int64     `json:"senderId" example:"3"`
	RecipientID       int64     `json:"recipientId" example:"7"`
	SenderUsername    string    `json:"senderUsername,omitempty"`
	RecipientUsername string    `json:"recipientUsername,omitempty"`
	Text              string    `json:"text" example:"Hi, are you free on Tuesday?"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToMessageResponse converts a message model to a response
func ToMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:                m.ID,
		SenderID:          m.SenderID,
		RecipientID:       m.RecipientID,
		SenderUsername:    m.SenderUsername,
		RecipientUsername: m.RecipientUsername,
		Text:              m.Text,
		CreatedAt:         m.CreatedAt,
	}
}

// ToMessageResponses converts a slice of message models
func ToMessageResponses(messages []*models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageResponse(m))
	}
	return out
}
