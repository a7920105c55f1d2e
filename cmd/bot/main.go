package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/karlos-perez/hundred-to-one/internal/admin"
	"github.com/karlos-perez/hundred-to-one/internal/config"
	"github.com/karlos-perez/hundred-to-one/internal/database"
	"github.com/karlos-perez/hundred-to-one/internal/game"
	"github.com/karlos-perez/hundred-to-one/internal/queue"
	"github.com/karlos-perez/hundred-to-one/internal/repositories"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
	"github.com/karlos-perez/hundred-to-one/telegram"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting 100 to 1 bot...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the admin account and starter questions
	if err := database.SeedAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed admin account", err)
	}
	if err := database.SeedQuestions(db, cfg); err != nil {
		logger.Warn("Failed to seed questions", "error", err)
	}

	store := repositories.NewStore(db)
	admins := repositories.NewAdminRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build the engine; its transport needs the bot, the bot needs an
	// event sink, so wire the sink up after both exist.
	registry := game.NewRegistry()
	var engine *game.Engine

	sink := func(ev game.Event) { engine.Enqueue(ev) }

	var broker *queue.Queue
	if cfg.QueueEnabled {
		broker, err = queue.Connect(cfg.QueueURL, cfg.QueueName)
		if err != nil {
			logger.Fatal("Failed to connect to message broker", err)
		}
		defer broker.Close()
		sink = func(ev game.Event) {
			if err := broker.Publish(ctx, ev); err != nil {
				logger.Error("Failed to publish event", "chat_id", ev.ChatID, "error", err)
			}
		}
	}

	bot, err := telegram.InitBot(cfg, sink)
	if err != nil {
		logger.Fatal("Failed to initialize bot", err)
	}

	engine = game.NewEngine(store, bot.Sender(), registry, cfg.Attempts)

	// Resurrect games interrupted by the previous shutdown before any
	// new events flow
	if err := engine.Recover(); err != nil {
		logger.Fatal("Failed to recover active games", err)
	}

	go engine.Run(ctx)
	go bot.Run(ctx)

	if cfg.QueueEnabled {
		go func() {
			if err := broker.Consume(ctx, engine); err != nil && ctx.Err() == nil {
				logger.Fatal("Broker consumer failed", err)
			}
		}()
	}

	// Management API
	server := admin.NewServer(cfg, store, admins)
	go func() {
		if err := server.Run(); err != nil {
			logger.Fatal("Admin API failed", err)
		}
	}()

	logger.Info("Bot started successfully", "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Admin API shutdown failed", "error", err)
	}

	logger.Info("Bot stopped")
}
