package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenLength is the fixed length of one-time confirmation/reset tokens.
const TokenLength = 6

// User represents an account in the system
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	Token        string    `json:"-" db:"token"`         // One-time confirmation/reset token, empty once consumed
	Confirmed    bool      `json:"confirmed" db:"confirmed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
