package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/config"
	"github.com/bagdasarian/sport-scribe/internal/handler"
)

type Server struct {
	server *http.Server
	logger *zap.Logger
}

func NewServer(cfg config.ServerConfig, h *handler.Handler, logger *zap.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(h, logger, cfg.AllowedOrigins),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		logger: logger,
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
