package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/catatanku/catatan-backend/internal/auth/service"
	"github.com/catatanku/catatan-backend/internal/auth/session"
	"github.com/catatanku/catatan-backend/internal/profiles"
)

const (
	CtxUserID       = "user_id"
	CtxUserEmail    = "email"
	CtxSessionToken = "session_token"

	loginPath = "/login"
)

// SessionGuard admits only authenticated users whose profile row exists.
//
// Every failure mode fails closed to the login page: a missing or unresolvable
// session is never surfaced as an error, and a session whose profile row is
// gone (a partially-completed registration, or an account deleted elsewhere)
// is revoked before redirecting.
func SessionGuard(sessions *session.Store, authService *service.AuthService, profileRepo *profiles.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			redirectToLogin(c)
			return
		}

		sess, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			// Expired, unknown, or unreachable store: treat all as "no session".
			redirectToLogin(c)
			return
		}

		profile, err := profileRepo.GetByID(c.Request.Context(), sess.UserID)
		if err == profiles.ErrProfileNotFound {
			// Auth identity without a profile row is an invalid account state.
			_ = authService.SignOut(c.Request.Context(), token)
			redirectToLogin(c)
			return
		}
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(CtxUserID, profile.ID)
		c.Set(CtxUserEmail, sess.Email)
		c.Set(CtxSessionToken, token)

		c.Next()
	}
}

// UserID extracts the authenticated user's id from the Gin context.
// This is set by SessionGuard.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserEmail))
}

func SessionToken(c *gin.Context) string {
	return c.GetString(CtxSessionToken)
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}

func redirectToLogin(c *gin.Context) {
	// Browser navigations get a real redirect; API clients get the target in
	// the body and follow it themselves.
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "not authenticated",
		"redirect": loginPath,
	})
}
