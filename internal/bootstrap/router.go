package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/catatanku/catatan-backend/config"
	"github.com/catatanku/catatan-backend/internal/account"
	"github.com/catatanku/catatan-backend/internal/admin"
	httpapi "github.com/catatanku/catatan-backend/internal/api/http"
	apimiddleware "github.com/catatanku/catatan-backend/internal/api/http/middleware"
	authhttp "github.com/catatanku/catatan-backend/internal/auth/http"
	authmiddleware "github.com/catatanku/catatan-backend/internal/auth/middleware"
	"github.com/catatanku/catatan-backend/internal/auth/repository"
	"github.com/catatanku/catatan-backend/internal/auth/service"
	"github.com/catatanku/catatan-backend/internal/auth/session"
	"github.com/catatanku/catatan-backend/internal/notes"
	"github.com/catatanku/catatan-backend/internal/profiles"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	Redis       *redis.Client
	Admin       config.AdminConfig
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	userRepo := repository.NewUserRepository(dep.DB)
	profileRepo := profiles.NewRepo(dep.DB)
	noteRepo := notes.NewRepo(dep.DB)
	sessions := session.NewStore(dep.Redis)

	authService := service.NewAuthService(userRepo, sessions)
	adminClient := account.NewAdminClient(dep.Admin.BaseURL, dep.Admin.ServiceRoleKey)
	accountService := account.NewService(authService, adminClient)
	cascade := admin.NewCascadeService(dep.DB)

	api := r.Group("/api/v1")
	api.Use(apimiddleware.RequestIDMiddleware())

	authHandler := authhttp.New(authService, sessions, profileRepo)
	authHandler.RegisterPublic(api.Group("/auth"))

	guarded := api.Group("")
	guarded.Use(authmiddleware.SessionGuard(sessions, authService, profileRepo))

	authHandler.RegisterProtected(guarded.Group("/auth"))
	notes.Register(guarded.Group("/notes"), noteRepo)
	account.Register(guarded.Group("/account"), accountService, authService)

	// Elevated-credential surface; deliberately outside the session guard, the
	// service key is its gate.
	admin.Register(api.Group("/admin"), cascade, dep.Admin.ServiceRoleKey)

	return r
}
