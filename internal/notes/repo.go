package notes

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNoteNotFound = errors.New("note not found")

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// List returns all of a user's notes, newest first.
func (r *Repo) List(ctx context.Context, userID string) ([]Note, error) {
	const q = `
		SELECT id, user_id, title, content, created_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Note, 0, 16)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, userID, title, content string) (*Note, error) {
	const q = `
		INSERT INTO notes (id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, content, created_at
	`

	var n Note
	err := r.db.QueryRowContext(ctx, q, uuid.New().String(), userID, title, content).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// Update rewrites title and content of a note the user owns.
func (r *Repo) Update(ctx context.Context, userID, noteID, title, content string) (*Note, error) {
	const q = `
		UPDATE notes
		SET title = $3, content = $4
		WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, title, content, created_at
	`

	var n Note
	err := r.db.QueryRowContext(ctx, q, userID, noteID, title, content).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *Repo) Delete(ctx context.Context, userID, noteID string) (bool, error) {
	const q = `
		DELETE FROM notes
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, q, userID, noteID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
