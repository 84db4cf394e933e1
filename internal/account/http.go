package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catatanku/catatan-backend/internal/auth/middleware"
	"github.com/catatanku/catatan-backend/internal/auth/service"
)

type Handler struct {
	svc  *Service
	auth *service.AuthService
}

func Register(rg *gin.RouterGroup, svc *Service, auth *service.AuthService) {
	h := &Handler{svc: svc, auth: auth}

	rg.PUT("/password", h.changePassword)
	rg.POST("/delete", h.deleteAccount)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := middleware.UserID(c)
	email := middleware.UserEmail(c)

	err := h.svc.ChangePassword(c.Request.Context(), userID, email, req.OldPassword, req.NewPassword)
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password berhasil diperbarui."})
	case ErrNewPasswordRequired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password baru tidak boleh kosong."})
	case ErrOldPasswordRequired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password lama tidak boleh kosong."})
	case ErrOldPasswordIncorrect:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Password lama salah."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal update password: " + err.Error()})
	}
}

type deleteAccountRequest struct {
	Password string `json:"password"`
	Confirm  bool   `json:"confirm"`
}

// deleteAccount runs the two-factor guard (explicit confirm flag + password
// re-authentication) and, only after the cascade succeeded, revokes the
// caller's own session so the client lands back on the login page.
func (h *Handler) deleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := middleware.UserID(c)
	email := middleware.UserEmail(c)

	message, err := h.svc.DeleteAccount(c.Request.Context(), userID, email, req.Password, req.Confirm)
	switch err {
	case nil:
		// The deletion endpoint leaves sessions alone; ending this one is our job.
		_ = h.auth.SignOut(c.Request.Context(), middleware.SessionToken(c))
		c.JSON(http.StatusOK, gin.H{"message": message, "redirect": "/login"})
	case ErrPasswordRequired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password tidak boleh kosong."})
	case ErrConfirmationRequired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Penghapusan akun memerlukan konfirmasi."})
	case ErrPasswordIncorrect:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Password salah."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
