// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"ticket-office/cmd"
	"ticket-office/internal/data/repository"
	"ticket-office/internal/wire"
	"ticket-office/internal/worker"
	"ticket-office/migrations"
	"ticket-office/pkg/database"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
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
		zap.Bool("debug", config.App.Debug),
		zap.Int("pool_size", config.Event.PoolSize),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Apply schema migrations
	if err := migrations.Apply(ctx, db.Pool()); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Seed the number pool on first startup only
	if err := repos.Pool.SeedIfEmpty(ctx, config.Event.PoolSize); err != nil {
		logger.Fatal("Failed to seed number pool", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Background workers
	artifactWorker := worker.NewArtifactWorker(app.Service.Ticket.Issued(), config.Artifact.Dir, logger)
	go artifactWorker.Start(ctx)

	if config.Backup.Enabled {
		backupWorker := worker.NewBackupWorker(
			app.Service.Backup,
			time.Duration(config.Backup.IntervalHours)*time.Hour,
			logger,
		)
		go backupWorker.Start(ctx)
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
