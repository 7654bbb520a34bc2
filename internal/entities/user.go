package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the database
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never exposed, never the raw password
	CreatedAt    time.Time `json:"created_at"`
}
