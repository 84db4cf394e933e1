package http

import (
	"github.com/catatanku/catatan-backend/internal/auth/service"
	"github.com/catatanku/catatan-backend/internal/auth/session"
	"github.com/catatanku/catatan-backend/internal/profiles"
)

type Handler struct {
	authService *service.AuthService
	sessions    *session.Store
	profileRepo *profiles.Repo
}

func New(authService *service.AuthService, sessions *session.Store, profileRepo *profiles.Repo) *Handler {
	return &Handler{
		authService: authService,
		sessions:    sessions,
		profileRepo: profileRepo,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
