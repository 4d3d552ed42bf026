package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type repoStub struct {
	upsertByGoogleID func(ctx context.Context, user User) (User, error)
	findByID         func(ctx context.Context, id uuid.UUID) (*User, error)
}

func (r *repoStub) UpsertByGoogleID(ctx context.Context, user User) (User, error) {
	if r.upsertByGoogleID != nil {
		return r.upsertByGoogleID(ctx, user)
	}
	return user, nil
}

func (r *repoStub) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if r.findByID != nil {
		return r.findByID(ctx, id)
	}
	return nil, nil
}

func TestServiceCompleteCreatesNewUser(t *testing.T) {
	var written []User
	repo := &repoStub{
		upsertByGoogleID: func(ctx context.Context, user User) (User, error) {
			written = append(written, user)
			return user, nil
		},
	}
	svc := NewService(repo)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	claims := &GoogleClaims{
		Sub:     "sub-999",
		Email:   "new@example.com",
		Name:    "New User",
		Picture: "avatar.png",
	}

	user, err := svc.Complete(context.Background(), claims)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("expected exactly one persistence write, got %d", len(written))
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected a user ID to be assigned")
	}
	if user.GoogleID != claims.Sub || user.Email != claims.Email || user.Name != claims.Name || user.AvatarURL != claims.Picture {
		t.Fatalf("unexpected user fields: %+v", user)
	}
	if !user.CreatedAt.Equal(fixed) || !user.LastLoginAt.Equal(fixed) {
		t.Fatalf("expected CreatedAt == LastLoginAt == %v, got created=%v lastLogin=%v", fixed, user.CreatedAt, user.LastLoginAt)
	}
}

func TestServiceCompleteReturnsExistingUser(t *testing.T) {
	existingID := uuid.New()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &repoStub{
		upsertByGoogleID: func(ctx context.Context, user User) (User, error) {
			// Store already holds this identity; simulate the update path.
			user.ID = existingID
			user.CreatedAt = created
			return user, nil
		},
	}
	svc := NewService(repo)

	user, err := svc.Complete(context.Background(), &GoogleClaims{Sub: "sub-1", Email: "user@example.com", Name: "User"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if user.ID != existingID {
		t.Fatalf("expected existing user ID %s, got %s", existingID, user.ID)
	}
	if !user.CreatedAt.Equal(created) {
		t.Fatalf("expected CreatedAt to be preserved, got %v", user.CreatedAt)
	}
	if !user.LastLoginAt.After(created) {
		t.Fatalf("expected LastLoginAt to be refreshed, got %v", user.LastLoginAt)
	}
}

func TestServiceCompleteRejectsMissingSubject(t *testing.T) {
	var writes int
	repo := &repoStub{
		upsertByGoogleID: func(ctx context.Context, user User) (User, error) {
			writes++
			return user, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Complete(context.Background(), &GoogleClaims{Email: "user@example.com"})
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
	if writes != 0 {
		t.Fatalf("expected no persistence write for rejected profile, got %d", writes)
	}
}

func TestServiceCompleteRejectsMissingEmail(t *testing.T) {
	svc := NewService(&repoStub{})

	_, err := svc.Complete(context.Background(), &GoogleClaims{Sub: "sub-1"})
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
}

func TestServiceCompleteRejectsNilClaims(t *testing.T) {
	svc := NewService(&repoStub{})

	_, err := svc.Complete(context.Background(), nil)
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
}

func TestServiceCompleteSurfacesPersistenceError(t *testing.T) {
	repo := &repoStub{
		upsertByGoogleID: func(ctx context.Context, user User) (User, error) {
			return User{}, errors.New("boom")
		},
	}
	svc := NewService(repo)

	_, err := svc.Complete(context.Background(), &GoogleClaims{Sub: "sub-1", Email: "user@example.com"})
	if err == nil || !strings.Contains(err.Error(), "upsert user") {
		t.Fatalf("expected upsert error, got %v", err)
	}
}
