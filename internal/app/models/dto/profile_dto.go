package dto

// ChooseRoleRequest selects the caller's role and creates the matching
// role entry. Tutor fields apply when role is TUTOR, goals when STUDENT.
type ChooseRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=TUTOR STUDENT" example:"TUTOR"`

	// Tutor entry fields
	Bio        string `json:"bio,omitempty" example:"Ten years teaching calculus"`
	HourlyRate string `json:"hourlyRate,omitempty" example:"45.00"`
	Subject    string `json:"subject,omitempty" example:"Mathematics"`
	Experience int    `json:"experience,omitempty" example:"10"`

	// Student entry fields
	Goals string `json:"goals,omitempty" example:"Pass the final exam"`
}

// UpdateEntryRequest updates the caller's role entry attributes
type UpdateEntryRequest struct {
	Bio        *string `json:"bio,omitempty"`
	HourlyRate *string `json:"hourlyRate,omitempty"`
	Subject    *string `json:"subject,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Goals      *string `json:"goals,omitempty"`
}
