package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/admissions/internal/bootstrap"
	"github.com/yigit/admissions/internal/config"
)

// shutdownTimeout bounds how long in-flight requests may take to finish
const shutdownTimeout = 10 * time.Second

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	app    *bootstrap.App
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates a server for a wired application
func NewServer(app *bootstrap.App) *Server {
	cfg := app.Config
	return &Server{
		config: cfg,
		app:    app,
		logger: app.Logger,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      app.Router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully and releases the application's resources.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("Shutdown requested, draining connections...")
		return s.Shutdown(context.Background())
	})

	return g.Wait()
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		errs = append(errs, err)
	} else {
		s.logger.Info().Msg("HTTP server gracefully stopped.")
	}

	if err := s.app.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to release resources")
		errs = append(errs, err)
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	return errors.Join(errs...)
}
