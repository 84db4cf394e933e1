package notes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/catatanku/catatan-backend/internal/auth/middleware"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type noteReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserID(c)

	items, err := h.repo.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// Search stays in memory over the fetched list, matching title or content
	// case-insensitively.
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := make([]Note, 0, len(items))
		for _, n := range items {
			if strings.Contains(strings.ToLower(n.Title), q) ||
				strings.Contains(strings.ToLower(n.Content), q) {
				filtered = append(filtered, n)
			}
		}
		items = filtered
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "notes": items})
}

func (h *Handler) create(c *gin.Context) {
	var req noteReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Judul tidak boleh kosong."})
		return
	}

	userID := middleware.UserID(c)
	n, err := h.repo.Create(c.Request.Context(), userID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Content))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "note": n})
}

func (h *Handler) update(c *gin.Context) {
	noteID := c.Param("id")

	var req noteReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Judul tidak boleh kosong."})
		return
	}

	userID := middleware.UserID(c)
	n, err := h.repo.Update(c.Request.Context(), userID, noteID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Content))
	if err == ErrNoteNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Catatan tidak ditemukan."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "note": n})
}

func (h *Handler) delete(c *gin.Context) {
	noteID := c.Param("id")
	userID := middleware.UserID(c)

	deleted, err := h.repo.Delete(c.Request.Context(), userID, noteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Catatan tidak ditemukan."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
