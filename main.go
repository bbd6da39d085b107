// main.go
package main

import (
	"context"
	"log"
	"time"

	"event-booking/cmd"
	"event-booking/internal/data/memstore"
	"event-booking/internal/data/repository"
	"event-booking/internal/wire"
	"event-booking/pkg/database"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage", config.App.StorageDriver),
	)

	ctx := context.Background()

	// Open storage
	var repos *repository.Repository
	switch config.App.StorageDriver {
	case utils.StorageDriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		repos = memstore.New().Repository()

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")

		if config.Database.Migrate {
			if err := database.Migrate(ctx, db); err != nil {
				logger.Fatal("Failed to apply schema", zap.Error(err))
			}
			logger.Info("Database schema applied")
		}

		repos = repository.NewRepository(db, logger)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Seed administrator
	if config.Admin.Email != "" {
		if err := app.Service.Auth.SeedAdmin(ctx, config.Admin.Name, config.Admin.Email, config.Admin.Password); err != nil {
			logger.Fatal("Failed to seed admin account", zap.Error(err))
		}
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	shutdownTimeout := time.Duration(config.App.ShutdownTimeout) * time.Second
	if err := cmd.APIServer(app.Router, config.App.Port, shutdownTimeout, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
