// Package server provides the HTTP server implementation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dkrylov/items-api/internal/config"
	"github.com/dkrylov/items-api/internal/handler"
	"github.com/dkrylov/items-api/internal/middleware"
	"github.com/dkrylov/items-api/internal/service"
	"github.com/dkrylov/items-api/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	httpServer    *http.Server
	router        *mux.Router
	config        *config.Config
	logger        *zap.Logger
	eventsHandler *handler.EventsHandler
}

// New creates a new Server instance over the given item store.
func New(cfg *config.Config, logger *zap.Logger, itemStore store.Store) *Server {
	router := mux.NewRouter()

	s := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes(itemStore)
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures the middleware chain.
func (s *Server) setupMiddleware() {
	allowedOrigins := []string{"*"}
	allowedMethods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders := []string{
		"Content-Type",
		middleware.RequestIDHeader,
	}

	// Apply middleware in order (first applied = outermost)
	s.router.Use(mux.MiddlewareFunc(middleware.Recovery(s.logger)))
	s.router.Use(mux.MiddlewareFunc(middleware.RequestID()))

	if s.config.MetricsEnabled {
		s.router.Use(mux.MiddlewareFunc(middleware.Metrics()))
	}

	s.router.Use(mux.MiddlewareFunc(middleware.Logging(s.logger)))
	s.router.Use(mux.MiddlewareFunc(middleware.CORS(allowedOrigins, allowedMethods, allowedHeaders)))
}

// setupRoutes configures the API routes. Fixed paths (events, metrics,
// health) are registered before the REST handler's /{id} routes so mux
// resolves them first.
func (s *Server) setupRoutes(itemStore store.Store) {
	s.eventsHandler = handler.NewEventsHandler(s.logger)
	s.eventsHandler.RegisterRoutes(s.router)

	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	items := service.New(itemStore, s.logger, s.eventsHandler)
	restHandler := handler.NewRESTHandler(items, s.logger)
	restHandler.RegisterRoutes(s.router)
}

// setupHTTPServer configures the HTTP server.
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.String("address", s.config.Address()),
		zap.Bool("metrics_enabled", s.config.MetricsEnabled),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	// Close all event subscribers first
	if s.eventsHandler != nil {
		s.eventsHandler.CloseAllConnections()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Router returns the server's router for testing purposes.
func (s *Server) Router() *mux.Router {
	return s.router
}
