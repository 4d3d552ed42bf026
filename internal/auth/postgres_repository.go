package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertByGoogleID inserts the user, or updates the existing row for the same
// google_id. The ON CONFLICT clause makes concurrent first-time logins for one
// Google subject race-safe: at most one insert wins, the loser becomes an
// update of the same row.
func (r *PostgresRepository) UpsertByGoogleID(ctx context.Context, user User) (User, error) {
	const query = `
		INSERT INTO users (id, google_id, email, name, avatar_url, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (google_id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    avatar_url = EXCLUDED.avatar_url,
		    last_login_at = EXCLUDED.last_login_at
		RETURNING id, google_id, email, name, avatar_url, created_at, last_login_at
	`

	var row userRow
	err := r.db.GetContext(ctx, &row, query,
		user.ID,
		user.GoogleID,
		user.Email,
		user.Name,
		user.AvatarURL,
		user.CreatedAt,
		user.LastLoginAt,
	)
	if err != nil {
		return User{}, err
	}

	return *row.toUser(), nil
}

// FindByID looks up a user by internal ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	const query = `
		SELECT id, google_id, email, name, avatar_url, created_at, last_login_at
		FROM users
		WHERE id = $1
	`

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return row.toUser(), nil
}

// userRow is a database row representation of User.
type userRow struct {
	ID          uuid.UUID `db:"id"`
	GoogleID    string    `db:"google_id"`
	Email       string    `db:"email"`
	Name        string    `db:"name"`
	AvatarURL   string    `db:"avatar_url"`
	CreatedAt   time.Time `db:"created_at"`
	LastLoginAt time.Time `db:"last_login_at"`
}

func (r *userRow) toUser() *User {
	return &User{
		ID:          r.ID,
		GoogleID:    r.GoogleID,
		Email:       r.Email,
		Name:        r.Name,
		AvatarURL:   r.AvatarURL,
		CreatedAt:   r.CreatedAt,
		LastLoginAt: r.LastLoginAt,
	}
}
