package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrProfileNotFound marks the corrupt-registration state: an auth identity
// without its application profile row. The session guard treats it as an
// invalid account and forces a sign-out.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is the application-level record complementing an auth identity,
// one row per user, keyed by the auth user id. There is no profile edit
// surface; rows are created at registration and removed by account deletion.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, id, email string) (*Profile, error) {
	const q = `
		INSERT INTO profiles (id, email)
		VALUES ($1, $2)
		RETURNING id, email, created_at
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, q, id, email).Scan(&p.ID, &p.Email, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Profile, error) {
	const q = `
		SELECT id, email, created_at
		FROM profiles
		WHERE id = $1
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Email, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
