package server

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/proagil-api/internal/config"
	"github.com/gravadigital/proagil-api/internal/handlers"
	"github.com/gravadigital/proagil-api/internal/logger"
	"github.com/gravadigital/proagil-api/internal/middleware/requestlog"
	"github.com/gravadigital/proagil-api/internal/response"
	"github.com/gravadigital/proagil-api/internal/storage/objectstore"
	"github.com/gravadigital/proagil-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	container  postgres.RepositoryContainer
	images     objectstore.ImageStore
}

// New creates a new server instance. images may be nil when object storage is disabled.
func New(cfg *config.Config, container postgres.RepositoryContainer, images objectstore.ImageStore) *Server {
	return &Server{
		config:    cfg,
		container: container,
		images:    images,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		// Timeouts seguros según estándares de Go
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.HTTP().Info("Starting HTTP server", "port", s.config.Server.Port, "images", s.images != nil)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.HTTP().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Router configures the HTTP router with middleware and routes
func (s *Server) Router() (*gin.Engine, error) {
	gin.SetMode(s.config.Server.GinMode)

	if err := handlers.RegisterValidations(); err != nil {
		return nil, fmt.Errorf("failed to register validations: %w", err)
	}

	router := gin.New()

	// Middleware básico
	router.Use(requestlog.New())
	router.Use(gin.CustomRecovery(recoverPanic))

	corsConfig := cors.DefaultConfig()
	origins := s.config.AllowOrigins()
	if slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = s.config.AllowMethods()
	corsConfig.AllowHeaders = s.config.AllowHeaders()
	corsConfig.ExposeHeaders = []string{requestlog.HeaderRequestID, "Location"}
	router.Use(cors.New(corsConfig))

	maxImageSize := s.config.ObjectStore.MaxSize
	router.MaxMultipartMemory = maxImageSize

	eventoHandler := handlers.NewEventoHandler(s.container.Repository, s.images, maxImageSize)
	palestranteHandler := handlers.NewPalestranteHandler(s.container.Repository, s.images, maxImageSize)
	storeHandler := handlers.NewStoreHandler(s.container.Eventos())

	// Health check
	router.GET("/ping", s.ping)

	handlers.RegisterRoutes(router.Group("/api"), eventoHandler, palestranteHandler, storeHandler)

	return router, nil
}

func (s *Server) ping(c *gin.Context) {
	if err := s.container.Health(c.Request.Context()); err != nil {
		logger.HTTP().Error("Health check failed", "error", err)
		response.ErrorResponseWithMessage(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ProAgil API is running",
		"status":  "healthy",
	})
}

// recoverPanic answers a panicking request with the JSON error envelope
func recoverPanic(c *gin.Context, recovered any) {
	logger.HTTP().Error("Recovered from panic",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", requestlog.RequestID(c),
		"panic", recovered)
	response.InternalServerError(c, "Internal server error")
	c.Abort()
}
