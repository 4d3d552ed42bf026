package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical local record for an externally-authenticated identity.
type User struct {
	ID          uuid.UUID
	GoogleID    string
	Email       string
	Name        string
	AvatarURL   string
	CreatedAt   time.Time
	LastLoginAt time.Time
}

// GoogleClaims contains the relevant claims from a Google ID token.
type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
