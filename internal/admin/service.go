package admin

import (
	"context"
	"database/sql"
	"fmt"
)

// CascadeService deletes everything belonging to a user: notes, then the
// profile row, then the auth identity.
//
// The three deletes run in that fixed order inside one transaction: the first
// failure aborts the remaining steps and rolls back the ones already done, so
// a user is never left half-deleted.
type CascadeService struct {
	db *sql.DB
}

func NewCascadeService(db *sql.DB) *CascadeService {
	return &CascadeService{db: db}
}

func (s *CascadeService) DeleteUser(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Notes owned by the user
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}

	// 2. Profile row
	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	// 3. Auth identity
	if _, err := tx.ExecContext(ctx, `DELETE FROM auth_users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("delete auth user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	return nil
}
