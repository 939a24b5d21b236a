package dto

import (
	"time"

	"github.com/emre/tutorhub/internal/app/models"
)

// RelationshipResponse represents a student-tutor pairing in API responses
type RelationshipResponse struct {
	ID              int64     `json:"id" example:"1"`
	StudentID       int64     `json:"studentId" example:"3"`
	TutorID         int64     `json:"tutorId" example:"7"`
	Status          string    `json:"status" example:"pending" enums:"pending,active"`
	TutorUsername   string    `json:"tutorUsername,omitempty"`
	StudentUsername string    `json:"studentUsername,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToRelationshipResponse converts a relationship model to a response
func ToRelationshipResponse(r *models.Relationship) RelationshipResponse {
	return RelationshipResponse{
		ID:              r.ID,
		StudentID:       r.StudentID,
		TutorID:         r.TutorID,
		Status:          r.Status(),
		TutorUsername:   r.TutorUsername,
		StudentUsername: r.StudentUsername,
		CreatedAt:       r.CreatedAt,
	}
}

// ToRelationshipResponses converts a slice of relationship models
func ToRelationshipResponses(relationships []*models.Relationship) []RelationshipResponse {
	out := make([]RelationshipResponse, 0, len(relationships))
	for _, r := range relationships {
		out = append(out, ToRelationshipResponse(r))
	}
	return out
}
