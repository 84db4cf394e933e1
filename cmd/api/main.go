package main

import (
	"context"
	"log"

	"github.com/catatanku/catatan-backend/config"
	"github.com/catatanku/catatan-backend/internal/bootstrap"
	"github.com/catatanku/catatan-backend/internal/maintenance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	maintenance.NewSweeper(db).Start()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "catatan-backend",
		Version:     cfg.App.Version,
		DB:          db,
		Redis:       rdb,
		Admin:       cfg.Admin,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
