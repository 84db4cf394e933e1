package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/catatanku/catatan-backend/internal/auth/domain"
	"github.com/catatanku/catatan-backend/internal/auth/middleware"
)

// Register creates the auth identity and then the profile row.
//
// The two inserts are deliberately not atomic: if the profile insert fails the
// auth identity stays behind, which is exactly the state the session guard's
// missing-profile branch cleans up at next login.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email dan password tidak boleh kosong."})
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email sudah terdaftar."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.profileRepo.Create(c.Request.Context(), user.ID, user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Database error saving new user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registrasi berhasil! Silakan login.",
		"user":    gin.H{"id": user.ID, "email": user.Email},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email dan password tidak boleh kosong."})
		return
	}

	sess, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email atau password salah."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": sess.Token,
		"expires_at":   sess.ExpiresAt,
		"user":         gin.H{"id": sess.UserID, "email": sess.Email},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c)

	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Berhasil logout.", "redirect": "/login"})
}

// Session returns the current session's user, as admitted by the guard.
func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    middleware.UserID(c),
			"email": middleware.UserEmail(c),
		},
	})
}
