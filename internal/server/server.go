package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ironsheep/diamond-reflect/internal/config"
)

// shutdownTimeout bounds how long in-flight requests may finish after Run's
// context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end of the diamond reflection effect.
type Server struct {
	cfg  config.Config
	echo *echo.Echo
}

// New creates a server with routes and middleware installed.
func New(cfg config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit(cfg.MaxUpload))

	s := &Server{cfg: cfg, echo: e}
	e.GET("/", s.handleHome)
	e.POST("/diamond_reflection_effect", s.handleDiamondReflection)
	return s
}

// ServeHTTP lets the server be mounted or tested as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.cfg.Addr())
	}()

	if s.cfg.Debug() {
		log.Printf("Listening on %s", s.cfg.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
