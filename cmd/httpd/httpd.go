// Package httpd implements the HTTP server command for the analysis
// service.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/pagesense/cmd/common"
	"github.com/jonesrussell/pagesense/internal/api"
	"github.com/jonesrussell/pagesense/internal/config"
	"github.com/jonesrussell/pagesense/internal/fetcher"
	"github.com/jonesrussell/pagesense/internal/logger"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP analysis server",
		Long:  `Start the HTTP server exposing page analysis and extraction endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Start(cmd.Context())
		},
	}
}

// Start runs the HTTP server until interrupted, then shuts down
// gracefully.
func Start(ctx context.Context) error {
	cfg := config.Load()
	log, err := common.BuildLogger(cfg)
	if err != nil {
		return err
	}

	svc := api.NewService(log, fetcher.New(log, &cfg.Fetcher), &cfg.Analyzer)
	router := api.SetupRouter(log, svc)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Info("Starting HTTP server", "addr", cfg.Server.Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runUntilInterrupt(ctx, log, server, errChan)
}

// runUntilInterrupt blocks until a server error, a shutdown signal or
// context cancellation.
func runUntilInterrupt(ctx context.Context, log logger.Interface, server *http.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		log.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		log.Info("Context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	log.Info("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
