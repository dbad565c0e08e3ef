// Command api runs the challenge/diary backend HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/shootit/greme/internal/config"
	"github.com/shootit/greme/internal/handler"
	"github.com/shootit/greme/internal/logger"
	"github.com/shootit/greme/internal/middleware"
	"github.com/shootit/greme/internal/repository"
	"github.com/shootit/greme/internal/router"
	"github.com/shootit/greme/internal/server"
	"github.com/shootit/greme/internal/service"

	databasePkg "github.com/shootit/greme/internal/database"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger service: %w", err)
	}

	log := logger.NewLogger(cfg, loggerService)

	// Clerk SDK key is process-global.
	clerk.SetKey(cfg.Auth.SecretKey)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := databasePkg.Migrate(ctx, log, cfg); err != nil {
		cancel()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	cancel()

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	r := router.New(srv, handlers, middlewares)
	srv.SetupHTTPServer(r)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stopCtx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown cleanly: %w", err)
	}

	log.Info().Msg("shutdown complete")
	return nil
}
