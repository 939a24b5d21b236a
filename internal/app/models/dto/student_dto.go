package dto

import "github.com/emre/tutorhub/internal/app/models"

// StudentResponse represents a student entry in API responses
type StudentResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username,omitempty" example:"learner42"`
	Goals    string `json:"goals" example:"Pass the final exam"`
}

// ToStudentResponse converts a student model to a response
func ToStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:       s.ID,
		Username: s.Username,
		Goals:    s.Goals,
	}
}
