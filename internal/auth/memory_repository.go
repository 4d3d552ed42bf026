package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository stores users in an in-process map, ideal for local
// development or tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]User
	byGoogle map[string]uuid.UUID
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:     make(map[uuid.UUID]User),
		byGoogle: make(map[string]uuid.UUID),
	}
}

// UpsertByGoogleID inserts or updates a user keyed by Google ID. The lock is
// held across the lookup and write, so concurrent first-time logins collapse
// to a single record.
func (r *InMemoryRepository) UpsertByGoogleID(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byGoogle[user.GoogleID]; ok {
		existing := r.byID[id]
		existing.Email = user.Email
		existing.Name = user.Name
		existing.AvatarURL = user.AvatarURL
		existing.LastLoginAt = user.LastLoginAt
		r.byID[id] = existing
		return existing, nil
	}

	r.byID[user.ID] = user
	r.byGoogle[user.GoogleID] = user.ID
	return user, nil
}

// FindByID returns a user by internal ID, or nil when absent.
func (r *InMemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Delete removes a user. Used by tests to model a record deleted after a
// token was issued.
func (r *InMemoryRepository) Delete(_ context.Context, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.byID[id]; ok {
		delete(r.byGoogle, user.GoogleID)
		delete(r.byID, id)
	}
}
