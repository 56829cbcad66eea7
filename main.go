// @title CircleNet API
// @version 1.0
// @description Backend for a privacy-oriented social network built around circles.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"circlenet_backend/internal/app"
	"circlenet_backend/internal/config"
	"circlenet_backend/pkg/configwatcher"
	"circlenet_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// Only the social limits are hot-reloadable; everything else is captured
	// at startup and needs a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		cfg.SetSocialLimits(newCfg.Social)
		log.Println("Social limits reloaded")
	})

	application.Run()
}
