// Package server exposes the translation service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/ZaguanLabs/doctrans/internal/app"
)

// DefaultMaxUploadBytes caps request bodies when no limit is configured.
const DefaultMaxUploadBytes = 32 << 20

// Config controls the HTTP listener.
type Config struct {
	Addr           string
	MaxUploadBytes int64
}

// Server serves the document translation API.
type Server struct {
	app    *app.App
	cfg    Config
	log    *log.Logger
	router *gin.Engine
}

// New creates a server for a. A nil logger discards output.
func New(a *app.App, cfg Config, l *log.Logger) *Server {
	if l == nil {
		l = log.New(io.Discard)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{app: a, cfg: cfg, log: l}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(s.log))

	router.GET("/healthz", s.health)

	v1 := router.Group("/v1")
	v1.GET("/languages", s.languages)

	uploads := v1.Group("", bodyLimit(s.cfg.MaxUploadBytes))
	uploads.POST("/documents/preview", s.preview)
	uploads.POST("/translations", s.translate)

	v1.GET("/translations/:id", s.getTranslation)
	v1.GET("/translations/:id/download", s.download)

	return router
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", "address", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Debug("Received shutdown signal, initiating graceful shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("Server shutdown completed")
	return nil
}
