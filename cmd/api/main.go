package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/thali/backend/config"
	"github.com/pageza/thali/backend/internal/logger"
	"github.com/pageza/thali/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg.LogLevel, cfg.LogFormat)
	logr.WithField("environment", cfg.Environment).Info("Configuration loaded")

	srv := server.New(cfg, logr)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		logr.Info("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logr.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		logr.Infof("Received signal: %v", sig)
	}

	logr.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Fatalf("Server shutdown error: %v", err)
	}
	logr.Info("Server stopped")
}
