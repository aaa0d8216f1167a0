package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chainraise/crowdfund-server/internal/api/middleware"
	"github.com/chainraise/crowdfund-server/internal/api/rest"
	"github.com/chainraise/crowdfund-server/internal/api/shared/executor"
	"github.com/chainraise/crowdfund-server/internal/logger"
	"github.com/chainraise/crowdfund-server/internal/messaging"
	"github.com/chainraise/crowdfund-server/internal/projector"
	"github.com/chainraise/crowdfund-server/internal/providers/ethereum"
	"github.com/chainraise/crowdfund-server/internal/reconciler"
	"github.com/chainraise/crowdfund-server/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	JWTPublicKey string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	ledger     ethereum.CrowdfundClient
	projector  projector.Projector
	store      store.Store
	reconciler reconciler.Reconciler
	publisher  messaging.Publisher
	httpServer *http.Server
}

// New creates a new API server
func New(
	cfg Config,
	ledger ethereum.CrowdfundClient,
	proj projector.Projector,
	st store.Store,
	rec reconciler.Reconciler,
	pub messaging.Publisher,
) *Server {
	return &Server{
		config:     cfg,
		ledger:     ledger,
		projector:  proj,
		store:      st,
		reconciler: rec,
		publisher:  pub,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Create shared executor
	exec := executor.NewExecutor(s.ledger, s.projector, s.store, s.reconciler, s.publisher)

	// Create REST handler
	restHandler := rest.NewHandler(exec, s.store, s.ledger)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler, middleware.AuthConfig{
		JWTPublicKey: s.config.JWTPublicKey,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
