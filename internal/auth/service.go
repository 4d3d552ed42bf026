package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrIncompleteProfile indicates the provider payload is missing a field the
// identity exchange cannot proceed without.
var ErrIncompleteProfile = errors.New("incomplete provider profile")

// Service converts external OAuth profiles into local User records.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new auth Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Complete finishes the identity exchange: it validates the provider claims
// and upserts the matching local user. First-time identities get a new record
// with CreatedAt == LastLoginAt; repeat logins refresh the existing record's
// profile and LastLoginAt.
func (s *Service) Complete(ctx context.Context, claims *GoogleClaims) (User, error) {
	if claims == nil || claims.Sub == "" {
		return User{}, fmt.Errorf("%w: missing subject", ErrIncompleteProfile)
	}
	if claims.Email == "" {
		return User{}, fmt.Errorf("%w: missing email", ErrIncompleteProfile)
	}

	now := s.now()
	candidate := User{
		ID:          uuid.New(),
		GoogleID:    claims.Sub,
		Email:       claims.Email,
		Name:        claims.Name,
		AvatarURL:   claims.Picture,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	user, err := s.repo.UpsertByGoogleID(ctx, candidate)
	if err != nil {
		return User{}, fmt.Errorf("upsert user: %w", err)
	}

	return user, nil
}
