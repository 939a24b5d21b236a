package models

import "time"

// Relationship pairs a student entry with a tutor entry. A pair has at
// most one row; is_active false means the student's request is pending,
// true means the tutor confirmed it.
type Relationship struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	TutorID   int64     `json:"tutorId" db:"tutor_id"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related usernames for display, filled by list queries
	TutorUsername   string `json:"tutorUsername,omitempty"`
	StudentUsername string `json:"studentUsername,omitempty"`
}

// Status returns the human-readable state of the pairing.
func (r *Relationship) Status() string {
	if r.IsActive {
		return "active"
	}
	return "pending"
}
