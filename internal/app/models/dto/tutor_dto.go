package dto

import "github.com/emre/tutorhub/internal/app/models"

// TutorResponse represents a tutor entry in API responses
type TutorResponse struct {
	ID         int64  `json:"id" example:"1"`
	Username   string `json:"username,omitempty" example:"mathguru"`
	Bio        string `json:"bio" example:"Ten years teaching calculus"`
	HourlyRate string `json:"hourlyRate" example:"45.00"`
	Subject    string `json:"subject" example:"Mathematics"`
	Experience int    `json:"experience" example:"10"`
}

// ListTutorsRequest carries the tutor directory filters
type ListTutorsRequest struct {
	Subject string `form:"subject"`
	MaxRate string `form:"maxRate"`
	Limit   int    `form:"limit,default=50"`
	Offset  int    `form:"offset"`
}

// ToTutorResponse converts a tutor model to a response
func ToTutorResponse(t *models.Tutor) TutorResponse {
	return TutorResponse{
		ID:         t.ID,
		Username:   t.Username,
		Bio:        t.Bio,
		HourlyRate: t.HourlyRate,
		Subject:    t.Subject,
		Experience: t.Experience,
	}
}

// ToTutorResponses converts a slice of tutor models
func ToTutorResponses(tutors []*models.Tutor) []TutorResponse {
	out := make([]TutorResponse, 0, len(tutors))
	for _, t := range tutors {
		out = append(out, ToTutorResponse(t))
	}
	return out
}
