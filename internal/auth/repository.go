package auth

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user persistence.
type Repository interface {
	// UpsertByGoogleID atomically inserts the user, or, when a record with the
	// same Google ID already exists, refreshes its profile fields and
	// LastLoginAt while preserving ID and CreatedAt. It returns the surviving
	// record and performs exactly one write.
	UpsertByGoogleID(ctx context.Context, user User) (User, error)

	// FindByID looks up a user by internal ID. Returns (nil, nil) when no
	// such user exists.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
