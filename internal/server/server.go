// Package server exposes the study tracker over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julianstephens/studylit/internal/config"
	"github.com/julianstephens/studylit/internal/logger"
)

type Server struct {
	cfg  config.ServerConfig
	http *http.Server
}

func New(cfg config.ServerConfig, svc Services) (*Server, error) {
	auth, err := NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    cfg.Addr(),
			Handler: NewRouter(svc, auth, cfg.Env),
		},
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.http.Addr, "env", s.cfg.Env)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
