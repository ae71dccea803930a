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

	"supportportal/infrastructure/config"
	"supportportal/infrastructure/di"

	"go.uber.org/zap"
)

const shutdownGrace = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The CRM login happens here, bounded by SF_TIMEOUT_SECONDS
	started := time.Now()
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer func() { _ = container.Logger.Sync() }()

	container.Logger.Info("Container initialized",
		zap.Duration("startup", time.Since(started)),
		zap.Bool("crm_connected", container.Session.Ready()),
	)

	if err := serve(ctx, cfg, container); err != nil {
		container.Logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	container.Logger.Info("Server stopped")
}

// serve blocks until ctx is cancelled or the listener fails
func serve(ctx context.Context, cfg *config.Config, container *di.Container) error {
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: container.Router,
		// Search waits on a model completion, so writes get more room than reads
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	failed := make(chan error, 1)
	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("base_path", cfg.BasePath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err, ok := <-failed:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	container.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
