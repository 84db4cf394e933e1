package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs("u1", "budi@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).
			AddRow("u1", "budi@example.com", time.Now()))

	p, err := repo.Create(context.Background(), "u1", "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}))

	p, err := repo.GetByID(context.Background(), "ghost")
	assert.Nil(t, p)
	assert.Equal(t, ErrProfileNotFound, err)
}
