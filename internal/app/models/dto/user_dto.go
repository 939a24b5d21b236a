package dto

import (
	"time"

	"github.com/emre/tutorhub/internal/app/models"
)

// UserResponse represents an account with its profile and role entry
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"jdoe"`
	IsStaff   bool      `json:"isStaff" example:"false"`
	Role      string    `json:"role" example:"STUDENT" enums:"UNSET,ADMIN,TUTOR,STUDENT"`
	CreatedAt time.Time `json:"createdAt"`

	Tutor   *TutorResponse   `json:"tutor,omitempty"`
	Student *StudentResponse `json:"student,omitempty"`
}

// ToUserResponse converts a user plus optional role entries to a response
func ToUserResponse(user *models.User, profile *models.Profile, tutor *models.Tutor, student *models.Student) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		IsStaff:   user.IsStaff,
		Role:      string(models.RoleUnset),
		CreatedAt: user.CreatedAt,
	}
	if profile != nil {
		resp.Role = string(profile.Role)
	}
	if tutor != nil {
		t := ToTutorResponse(tutor)
		resp.Tutor = &t
	}
	if student != nil {
		s := ToStudentResponse(student)
		resp.Student = &s
	}
	return resp
}
