package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/api/middleware"
	"github.com/feral-file/ff-frame-inspector/internal/api/rest"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/processor"
)

// multipart overhead allowed on top of the file size limit
const multipartOverhead = 1 << 20

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxUploadSize  int64
	AllowedOrigins []string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	processor  processor.Processor
	base64     adapter.Base64
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, proc processor.Processor, b64 adapter.Base64) *Server {
	return &Server{
		config:    cfg,
		processor: proc,
		base64:    b64,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if s.config.MaxUploadSize > 0 {
		router.MaxMultipartMemory = s.config.MaxUploadSize
	}

	// Setup middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))
	if s.config.MaxUploadSize > 0 {
		router.Use(middleware.MaxBodySize(s.config.MaxUploadSize + multipartOverhead))
	}

	restHandler := rest.NewHandler(s.config.Debug, s.processor, s.base64, s.config.MaxUploadSize)
	rest.SetupRoutes(router, restHandler)

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
