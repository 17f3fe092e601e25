package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/belgahub/hub/internal/rest"
	"github.com/belgahub/hub/internal/setup"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HubLogDir specifies where marketplace server log files are stored.
const HubLogDir = "logs/hub_logs"

// Server timeouts.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Second
	ShutdownTimeout = 30 * time.Second
)

func main() {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(context.Background(), HubLogDir)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup(context.Background())

	// Wait for the database to answer before serving traffic
	startupTimeout := time.Duration(app.Config.Hub.Server.StartupTimeout) * time.Millisecond
	if err := app.Gateway.WaitReady(context.Background(), startupTimeout); err != nil {
		app.Logger.Fatal("Dependencies not ready", zap.Error(err))
	}

	// Create server
	handler, err := rest.NewServer(app.DB, app.Gateway, app.Postal, &app.Config.Hub, app.Logger)
	if err != nil {
		app.Logger.Fatal("Failed to create REST server", zap.Error(err))
	}

	// Get server address from config
	addr := fmt.Sprintf("%s:%d", app.Config.Hub.Server.Host, app.Config.Hub.Server.Port)

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run the HTTP server and the notification dispatcher together
	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		log.Printf("Hub server started on %s", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		app.Dispatcher.Run(groupCtx)
		return nil
	})

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-groupCtx.Done():
	}

	app.Logger.Info("Shutting down hub server...")

	// Create shutdown context with timeout
	ctx, timeoutCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer timeoutCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Stop the dispatcher and wait for in-flight deliveries
	cancel()

	if err := group.Wait(); err != nil {
		app.Logger.Error("Server exited with error", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")
}
