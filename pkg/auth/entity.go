package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered job seeker. DisplayName and Email seed the CV
// profile until the user saves one.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}
