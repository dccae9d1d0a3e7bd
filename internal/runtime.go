package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// server serves an App until its base context ends or the process gets
// SIGINT or SIGTERM.
type server struct {
	http   *http.Server
	cfg    *runConfig
	log    *slog.Logger
	routes int
}

func newServer(a *App, addr string, cfg *runConfig) *server {
	if addr == "" {
		addr = ":8080"
	}
	if cfg.shutdownTimeout <= 0 {
		cfg.shutdownTimeout = defaultShutdownTimeout
	}
	if cfg.baseCtx == nil {
		cfg.baseCtx = context.Background()
	}
	log := cfg.logger
	if log == nil {
		log = a.logger
	}

	return &server{
		http: &http.Server{
			Addr:              addr,
			Handler:           a.router,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
		cfg:    cfg,
		log:    log,
		routes: len(a.routes),
	}
}

// run blocks until the server stops. Startup hooks run before the listener
// opens, shutdown hooks after the last request has finished.
func (s *server) run() error {
	ctx, stop := signal.NotifyContext(s.cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i, hook := range s.cfg.startupHooks {
		if err := hook(ctx); err != nil {
			s.log.ErrorContext(ctx, "startup hook failed", slog.Int("hook", i), slog.Any("error", err))
			return fmt.Errorf("startup hook %d: %w", i, err)
		}
	}

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	s.log.InfoContext(ctx, "awesome is serving",
		slog.String("address", ln.Addr().String()),
		slog.Int("routes", s.routes),
	)

	served := make(chan error, 1)
	go func() { served <- s.http.Serve(ln) }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.shutdown(context.Cause(ctx))
	}
}

// shutdown drains open requests, then runs the shutdown hooks in
// registration order. Every hook runs even when an earlier one fails.
func (s *server) shutdown(reason error) error {
	started := time.Now()
	s.log.Info("shutting down", slog.String("reason", reason.Error()))

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain requests: %w", err))
	}
	for i, hook := range s.cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			s.log.Error("shutdown hook failed", slog.Int("hook", i), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("shutdown hook %d: %w", i, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.log.Error("shutdown completed with errors", slog.Duration("took", time.Since(started)))
		return err
	}
	s.log.Info("shutdown completed", slog.Duration("took", time.Since(started)))
	return nil
}
