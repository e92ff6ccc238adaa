package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railres/internal/api"
	"railres/internal/config"
	"railres/internal/logger"
	"railres/internal/validation"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Проверяем, нужно ли запустить валидацию
	if len(os.Args) > 1 && os.Args[1] == "validate" {
		baseURL := "http://localhost:" + cfg.Port
		if len(os.Args) > 2 {
			baseURL = os.Args[2]
		}
		if err := validation.RunValidation(baseURL); err != nil {
			logger.Fatal("Validation failed", "error", err)
		}
		return
	}

	// Создаем и настраиваем сервер
	server, err := api.NewServer(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize server", "error", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.GetRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Ждем сигнал для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	if err := server.Cleanup(); err != nil {
		slog.Error("Error during cleanup", "error", err)
	}

	slog.Info("Server stopped")
}
