// Package main initializes and starts the flashcard web front-end,
// setting up configuration, logging, the upstream engine client,
// the review service, handlers, and the HTTP server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/sidious38/simpleAnkiWeb/internal/anki"
	"github.com/sidious38/simpleAnkiWeb/internal/config"
	"github.com/sidious38/simpleAnkiWeb/internal/logger"
	"github.com/sidious38/simpleAnkiWeb/internal/server/handler/http"
	"github.com/sidious38/simpleAnkiWeb/internal/service"
	"github.com/sidious38/simpleAnkiWeb/internal/session"
	"github.com/sidious38/simpleAnkiWeb/web"
	"go.uber.org/zap"
)

func main() {
	// Parse command-line and environment configuration. Aborts when a
	// required environment variable is missing.
	options := config.Parse()

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Client for the upstream flashcard engine.
	engine := anki.New(options.AnkiConnectURL)

	// Review business logic over the engine.
	reviewService := service.NewReviewService(engine)

	// Session cookies signed with the configured secret.
	sessions := session.NewManager(options.SessionSecret, session.DefaultTTL)

	// Create HTTP handlers for login, pages, and review endpoints.
	authHandler := &http.AuthHandler{
		Username: options.Username,
		Password: options.Password,
		Sessions: sessions,
	}
	reviewHandler := &http.ReviewHandler{Service: reviewService, Logger: zapLogger}
	pagesHandler := &http.PagesHandler{
		Assets:  web.Assets(),
		Service: reviewService,
		Logger:  zapLogger,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, reviewHandler, pagesHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	// Shut down gracefully on SIGINT/SIGTERM.
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zapLogger.Error("shutdown error", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.String("engine", options.AnkiConnectURL),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
