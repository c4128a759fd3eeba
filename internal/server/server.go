package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/valuegen/internal/builder"
	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/generator"
	"github.com/toyz/valuegen/internal/parser"
	"github.com/toyz/valuegen/internal/utils"
)

// Server exposes builder generation over HTTP
type Server struct {
	config      *Config
	echo        *echo.Echo
	loader      *parser.Loader
	generator   *generator.Generator
	diagnostics *utils.DiagnosticSystem
}

// New creates a server running the builder plugin. A nil config uses
// DefaultConfig and nil diagnostics log at info level.
func New(config *Config, diagnostics *utils.DiagnosticSystem) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if config.EnableRecover {
		e.Use(middleware.Recover())
	}
	if config.EnableLogger {
		e.Use(middleware.Logger())
	}
	if config.EnableCORS {
		e.Use(middleware.CORS())
	}
	if config.MaxBodySize != "" {
		e.Use(middleware.BodyLimit(config.MaxBodySize))
	}

	s := &Server{
		config:      config,
		echo:        e,
		loader:      parser.NewLoader(nil),
		generator:   generator.NewGenerator(generator.WithPlugins(builder.NewPlugin(nil))),
		diagnostics: diagnostics,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)

	v1 := s.echo.Group("/v1")
	v1.GET("/plugins", s.handlePlugins)
	v1.POST("/builders", s.handleBuilder)
	v1.POST("/builders/batch", s.handleBatch)
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is canceled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		s.diagnostics.Info("Builder server listening on %s", s.config.Address())
		if err := s.echo.Start(s.config.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return errors.WrapConfigurationError("server", "listen on", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.diagnostics.Info("Shutting down builder server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.diagnostics.Info("Builder server stopped")
	return nil
}
