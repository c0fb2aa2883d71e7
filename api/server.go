package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/api/types"
	"github.com/killallgit/podcast-gateway/internal/observability"
	"github.com/killallgit/podcast-gateway/pkg/config"
	"github.com/killallgit/podcast-gateway/pkg/logger"
)

// Server represents the HTTP server
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     *config.Config

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps *types.Dependencies) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	if deps == nil {
		deps = &types.Dependencies{}
	}
	if deps.Config == nil {
		deps.Config = cfg
	}

	return &Server{
		engine:       engine,
		config:       cfg,
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:        engine,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if err := s.engine.SetTrustedProxies(s.config.Server.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	s.setupMiddleware()

	return s.setupRoutes()
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	sec := s.config.Security

	if sec.EnableRequestID {
		s.engine.Use(RequestID())
	}
	s.engine.Use(logger.RequestLogger())
	s.engine.Use(observability.HTTPMiddleware())

	// CORS answers preflights before any limiter sees them
	s.engine.Use(CORS(sec.CORSOrigins, sec.CORSMethods, sec.CORSHeaders))

	if sec.MaxBodyBytes > 0 {
		s.engine.Use(RequestSizeLimitWithSize(sec.MaxBodyBytes))
	} else {
		s.engine.Use(RequestSizeLimit())
	}

	s.engine.Use(policyMiddleware(s.dependencies, config.PolicyGlobal)...)
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	return RegisterRoutes(s.engine, s.dependencies)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
