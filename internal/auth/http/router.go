package http

import "github.com/gin-gonic/gin"

// RegisterPublic mounts the routes reachable without a session.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
}

// RegisterProtected mounts the routes behind the session guard.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
	rg.GET("/session", h.Session)
	rg.GET("/events", h.StreamEvents)
}
