package main

import (
	"go.uber.org/zap"

	"coldstart/internal/config"
	"coldstart/internal/notifier"
	"coldstart/internal/repository"
	"coldstart/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Telegram notifier for venue operators (optional)
	bot, err := notifier.NewBot(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		bot = nil
	}

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger, bot)
	srv.Run(cfg.Server.Port)
}
