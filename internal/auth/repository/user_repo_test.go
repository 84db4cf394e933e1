package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catatanku/catatan-backend/internal/auth/domain"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("creates user and fills generated fields", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO auth_users").
			WithArgs(sqlmock.AnyArg(), "budi@example.com", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		user := &domain.User{Email: "budi@example.com", PasswordHash: "hash"}
		err := repo.Create(context.Background(), user)
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM auth_users").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}))

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.Nil(t, user)
	assert.Equal(t, domain.ErrUserNotFound, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("updates existing user", func(t *testing.T) {
		mock.ExpectExec("UPDATE auth_users").
			WithArgs("u1", "newhash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdatePassword(context.Background(), "u1", "newhash"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user maps to ErrUserNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE auth_users").
			WithArgs("missing", "newhash").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePassword(context.Background(), "missing", "newhash")
		assert.Equal(t, domain.ErrUserNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
