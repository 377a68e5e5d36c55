package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the authentication-side view of an account. Profile data used for
// matching lives in the directory package.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
