// main.go
package main

import (
	"context"
	"log"
	"os"

	"home-services/cmd"
	"home-services/internal/data/repository"
	"home-services/internal/wire"
	"home-services/pkg/database"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	flags, err := utils.Flags(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	// Load config
	config, err := utils.LoadConfig(flags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Storage backend
	var repos *repository.Repository
	if config.Database.Driver == "memory" {
		logger.Warn("Using in-memory storage, data is lost on restart")
		repos = repository.NewMemoryRepository()
	} else {
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")

		if config.Database.AutoMigrate {
			if err := database.Migrate(config.Database, logger); err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
		}

		repos = repository.NewRepository(db, logger)
	}

	if config.Seed.Run {
		if err := cmd.Seed(ctx, repos, config.Seed, logger); err != nil {
			logger.Fatal("Seed failed", zap.Error(err))
		}
		return
	}

	usingDefault, err := config.CheckJWTSecret()
	if err != nil {
		logger.Fatal("Refusing to start", zap.Error(err))
	}
	if usingDefault {
		logger.Warn("JWT_SECRET is the development default, do not use this outside local debugging")
	}

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := app.Janitor.Start(config.Upload.SweepSchedule); err != nil {
		logger.Fatal("Failed to start upload janitor", zap.Error(err))
	}
	defer app.Janitor.Stop()

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
