package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServiceKey = "service-role-key"

func setupAdminRouter(t *testing.T, serviceKey string) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := gin.New()
	router.HandleMethodNotAllowed = true
	Register(router.Group("/api/v1/admin"), NewCascadeService(db), serviceKey)

	return router, mock
}

func doDelete(router *gin.Engine, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/admin/delete-account", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(ServiceKeyHeader, key)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestDeleteAccount_FullCascade(t *testing.T) {
	router, mock := setupAdminRouter(t, testServiceKey)

	// Strict order: notes, then profile, then auth identity, in one transaction.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notes").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM profiles").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM auth_users").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rr := doDelete(router, `{"userId":"u1"}`, testServiceKey)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Akun dan semua data berhasil dihapus.", body["message"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_MissingUserID(t *testing.T) {
	router, mock := setupAdminRouter(t, testServiceKey)

	rr := doDelete(router, `{}`, testServiceKey)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "User ID dibutuhkan", body["error"])

	// No deletion was even started.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_ServiceKeyUnconfigured(t *testing.T) {
	router, mock := setupAdminRouter(t, "")

	rr := doDelete(router, `{"userId":"u1"}`, "anything")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "SERVICE_ROLE_KEY belum di-set di environment variables", body["error"])

	// Zero deletions on configuration error.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_WrongServiceKey(t *testing.T) {
	router, mock := setupAdminRouter(t, testServiceKey)

	rr := doDelete(router, `{"userId":"u1"}`, "not-the-key")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_NotesStepFailureAbortsCascade(t *testing.T) {
	router, mock := setupAdminRouter(t, testServiceKey)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notes").
		WithArgs("u1").
		WillReturnError(errors.New("relation notes is locked"))
	mock.ExpectRollback()

	rr := doDelete(router, `{"userId":"u1"}`, testServiceKey)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "delete notes")
	assert.Contains(t, body["error"], "relation notes is locked")

	// Profile and auth-identity steps were never attempted.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_ProfileStepFailureRollsBack(t *testing.T) {
	router, mock := setupAdminRouter(t, testServiceKey)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notes").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM profiles").
		WithArgs("u1").
		WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	rr := doDelete(router, `{"userId":"u1"}`, testServiceKey)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "delete profile")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount_MethodNotAllowed(t *testing.T) {
	router, mock := setupAdminRouter(t, testServiceKey)

	req := httptest.NewRequest("GET", "/api/v1/admin/delete-account", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
