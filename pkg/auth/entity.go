package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a system user. Email is the unique
// identifier used for authentication.
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
