package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/openpdfa/openpdfa/internal/auth"
	"github.com/openpdfa/openpdfa/internal/metrics"
	"github.com/openpdfa/openpdfa/internal/store"
)

// Converter is the conversion surface the API exposes.
type Converter interface {
	Convert(ctx context.Context, input string) (string, error)
}

// Server holds the API server dependencies.
type Server struct {
	echo      *echo.Echo
	converter Converter
	store     *store.Store
	logger    *zap.SugaredLogger
}

// ServerOpts configures the API server.
type ServerOpts struct {
	Converter Converter
	Store     *store.Store // nil disables the audit log and /conversions
	APIKey    string
	MaxBodyMB int
	Logger    *zap.SugaredLogger
}

// NewServer creates the API server with all routes configured.
func NewServer(opts ServerOpts) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		converter: opts.Converter,
		store:     opts.Store,
		logger:    opts.Logger,
	}

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	if opts.MaxBodyMB > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", opts.MaxBodyMB)))
	}
	e.Use(metrics.EchoMiddleware())

	// Health and metrics (no auth)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// API routes (with auth)
	api := e.Group("")
	api.Use(auth.APIKeyMiddleware(opts.APIKey))
	api.POST("/convert", s.convertDocument)
	api.GET("/conversions", s.listConversions)

	return s
}

// Start starts the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	return s.echo.Close()
}
