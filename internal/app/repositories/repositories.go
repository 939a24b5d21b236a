package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	User         IUserRepository
	Profile      IProfileRepository
	Tutor        ITutorRepository
	Student      IStudentRepository
	Relationship IRelationshipRepository
	Message      IMessageRepository
	Token        ITokenRepository
}

// NewRepositories creates a new Repositories container
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Profile:      NewProfileRepository(db),
		Tutor:        NewTutorRepository(db),
		Student:      NewStudentRepository(db),
		Relationship: NewRelationshipRepository(db),
		Message:      NewMessageRepository(db),
		Token:        NewTokenRepository(db),
	}
}
