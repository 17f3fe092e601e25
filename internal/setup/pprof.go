package setup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	// #nosec G108 -- profiling is served on a loopback-only listener
	_ "net/http/pprof"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// debugServer exposes net/http/pprof so profiles can be pulled from a
// running hub. It binds to loopback only; the marketplace API never
// shares this listener.
type debugServer struct {
	srv      *http.Server
	listener net.Listener
}

// startDebugServer binds the pprof mux to localhost and serves it in
// the background.
func startDebugServer(port int, logger *zap.Logger) (*debugServer, error) {
	addr := net.JoinHostPort("localhost", strconv.Itoa(port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind debug listener: %w", err)
	}

	srv := &http.Server{
		Handler:           http.DefaultServeMux,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Profiling endpoint listening", zap.String("address", addr))

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Profiling server failed", zap.Error(err))
		}
	}()

	return &debugServer{
		srv:      srv,
		listener: listener,
	}, nil
}

// shutdown stops the server and releases the listener.
func (d *debugServer) shutdown(ctx context.Context) error {
	err := d.srv.Shutdown(ctx)
	d.listener.Close()

	return err
}
