package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/story-commands/internal/config"
	"github.com/jwebster45206/story-commands/internal/handlers"
	"github.com/jwebster45206/story-commands/internal/logger"
	"github.com/jwebster45206/story-commands/internal/middleware"
	"github.com/jwebster45206/story-commands/internal/services/events"
	"github.com/jwebster45206/story-commands/internal/services/queue"
	"github.com/jwebster45206/story-commands/internal/storage"
	"github.com/jwebster45206/story-commands/pkg/dice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Story Commands API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir,
		"session_ttl", cfg.SessionTTL)

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SessionTTL, log)
	if err != nil {
		log.Error("Failed to configure storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	// Turns and events share the storage connection pool.
	queueClient := queue.NewClientFromRedis(store.Client(), log)
	turns := queue.NewTurnQueue(queueClient)
	broadcaster := events.NewBroadcaster(queueClient.Redis(), log)

	var roller dice.Roller = dice.DefaultRoller()
	if cfg.DiceSeed != 0 {
		roller = dice.NewSeededRoller(cfg.DiceSeed)
		log.Warn("Dice are seeded; rolls are reproducible", "seed", cfg.DiceSeed)
	}

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	mux.Handle("/v1/commands", handlers.NewCommandHandler(store, turns, broadcaster, roller, log))

	rollHandler := handlers.NewRollHandler(store, broadcaster, roller, log)
	mux.Handle("/v1/rolls", rollHandler)
	mux.Handle("/v1/rolls/", rollHandler)

	sessionHandler := handlers.NewSessionHandler(store, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	characterHandler := handlers.NewCharacterHandler(log, store)
	mux.Handle("/v1/characters", characterHandler)
	mux.Handle("/v1/characters/", characterHandler)

	mux.Handle("/v1/events/sessions/", handlers.NewEventsHandler(broadcaster, store, log))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.LoggerWith(log, mux),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the SSE endpoint holds connections open.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
