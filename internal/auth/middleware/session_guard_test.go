package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catatanku/catatan-backend/internal/auth/domain"
	"github.com/catatanku/catatan-backend/internal/auth/repository"
	"github.com/catatanku/catatan-backend/internal/auth/service"
	"github.com/catatanku/catatan-backend/internal/auth/session"
	"github.com/catatanku/catatan-backend/internal/profiles"
)

type guardFixture struct {
	router   *gin.Engine
	mock     sqlmock.Sqlmock
	sessions *session.Store
	admitted *bool
}

func setupGuard(t *testing.T) *guardFixture {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := session.NewStore(client)
	userRepo := repository.NewUserRepository(db)
	profileRepo := profiles.NewRepo(db)
	authService := service.NewAuthService(userRepo, sessions)

	admitted := false
	router := gin.New()
	router.Use(SessionGuard(sessions, authService, profileRepo))
	router.GET("/dashboard", func(c *gin.Context) {
		admitted = true
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "email": UserEmail(c)})
	})

	return &guardFixture{router: router, mock: mock, sessions: sessions, admitted: &admitted}
}

func TestSessionGuard_NoSession(t *testing.T) {
	t.Run("API client gets 401 with redirect target", func(t *testing.T) {
		f := setupGuard(t)

		req := httptest.NewRequest("GET", "/dashboard", nil)
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "/login", body["redirect"])
		assert.False(t, *f.admitted, "view must not render without a session")
		require.NoError(t, f.mock.ExpectationsWereMet(), "no profile lookup without a session")
	})

	t.Run("browser navigation gets a real redirect", func(t *testing.T) {
		f := setupGuard(t)

		req := httptest.NewRequest("GET", "/dashboard", nil)
		req.Header.Set("Accept", "text/html")
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
		assert.False(t, *f.admitted)
	})

	t.Run("unknown token fails closed", func(t *testing.T) {
		f := setupGuard(t)

		req := httptest.NewRequest("GET", "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer bogus-token")
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, *f.admitted)
	})
}

func TestSessionGuard_MissingProfileForcesSignOut(t *testing.T) {
	f := setupGuard(t)
	ctx := context.Background()

	sess, err := f.sessions.Create(ctx, "u1", "budi@example.com")
	require.NoError(t, err)

	// Auth identity exists but the profile insert never happened.
	f.mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("u1").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *f.admitted, "corrupt account state must never be admitted")

	// The guard revoked the session, not just rejected the request.
	_, err = f.sessions.Get(ctx, sess.Token)
	assert.Equal(t, domain.ErrSessionNotFound, err)

	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSessionGuard_ProfileFetchErrorFailsClosed(t *testing.T) {
	f := setupGuard(t)

	sess, err := f.sessions.Create(context.Background(), "u1", "budi@example.com")
	require.NoError(t, err)

	f.mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("u1").
		WillReturnError(sql.ErrConnDone)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *f.admitted)
}

func TestSessionGuard_AdmitsValidUser(t *testing.T) {
	f := setupGuard(t)

	sess, err := f.sessions.Create(context.Background(), "u1", "budi@example.com")
	require.NoError(t, err)

	f.mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).
			AddRow("u1", "budi@example.com", time.Now()))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *f.admitted)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "budi@example.com", body["email"])
}
