package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railres/internal/config"
	"railres/internal/consumers"
	"railres/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// The notifier has its own durable identity on the streaming cluster
	cfg.NATS.ClientID = "railres-notifier"

	notifier, err := consumers.NewNotifierService(cfg)
	if err != nil {
		logger.Fatal("Failed to create notifier service", "error", err)
	}

	if err := notifier.Start(); err != nil {
		logger.Fatal("Failed to start consumers", "error", err)
	}

	slog.Info("Notifier service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := notifier.Shutdown(ctx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	slog.Info("Notifier service stopped")
}
