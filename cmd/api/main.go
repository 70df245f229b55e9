// @title           Task Manager API
// @version         1.0
// @description     Multi-tenant task tracking API with JWT authentication.
// @host            localhost:8080
// @BasePath        /api/v1
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bdfdm25/task-manager/internal/app"
	"github.com/bdfdm25/task-manager/internal/config"
	"github.com/bdfdm25/task-manager/internal/logging"

	"github.com/joho/godotenv"

	_ "github.com/bdfdm25/task-manager/docs"
)

func main() {
	// .env is optional; deployments normally set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log)
	logger.WithField("env", cfg.App.Env).Info("config loaded, connecting to DB")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatalf("app init: %v", err)
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		logger.Infof("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := application.Close(ctx); err != nil {
		logger.Errorf("app close: %v", err)
	}
}
