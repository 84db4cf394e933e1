package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cascade *CascadeService
}

// Register mounts the privileged deletion endpoint. Only POST is routed; with
// HandleMethodNotAllowed enabled on the engine, every other method gets 405.
func Register(rg *gin.RouterGroup, cascade *CascadeService, serviceRoleKey string) {
	h := &Handler{cascade: cascade}

	rg.Use(ServiceKeyRequired(serviceRoleKey))
	rg.POST("/delete-account", h.deleteAccount)
}

type deleteAccountRequest struct {
	UserID string `json:"userId"`
}

// deleteAccount removes a user's notes, profile, and auth identity.
//
// It deliberately does not touch live session tokens: signing the user out
// after a successful deletion is the caller's responsibility.
func (h *Handler) deleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID dibutuhkan"})
		return
	}

	if err := h.cascade.DeleteUser(c.Request.Context(), req.UserID); err != nil {
		log.Printf("Delete account error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Akun dan semua data berhasil dihapus."})
}
