package server

import (
	"log/slog"
	"net/http"

	"github.com/alkime/studio/internal/config"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/studio"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

const serviceName = "studio"

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	router  *gin.Engine
	studio  *studio.Service
	backend *search.Backend
}

// New creates a new Server instance. backend answers /api/web-search and
// svc answers the studio API.
func New(cfg *config.Config, logger *slog.Logger, svc *studio.Service, backend *search.Backend) *Server {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Configure proxy trust for production (Fly.io)
	if cfg.IsProduction() {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}
	// Development: no reverse proxy, uses direct client IP

	server := &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		studio:  svc,
		backend: backend,
	}

	// Setup middleware and routes
	setupMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api", noStore())
	{
		api.GET("", s.handleIndex)
		api.POST("/web-search", s.handleWebSearch)

		api.POST("/ideas", s.handleIdeas)
		api.POST("/content", s.handleContent)
		api.POST("/seo", s.handleSEO)
		api.POST("/format", s.handleFormat)
		api.POST("/hashtags", s.handleHashtags)

		api.GET("/schedule", s.handleListSchedule)
		api.POST("/schedule", s.handleSchedule)
		api.DELETE("/schedule/:id", s.handleDeleteSchedule)

		api.GET("/analytics", s.handleAnalytics)
		api.GET("/download", s.handleDownload)
	}

	// Serve the front end when a static directory is configured.
	// NoRoute only triggers when no explicit routes match (like /health)
	if s.config.StaticDir != "" {
		s.router.NoRoute(static.Serve("/", static.LocalFile(s.config.StaticDir, true)))
		s.logger.Debug("Serving static files", "dir", s.config.StaticDir)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// handleIndex describes the API.
func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"status":  "running",
		"endpoints": gin.H{
			"/health":           "Health check endpoint",
			"/api/web-search":   "Web search endpoint (POST)",
			"/api/ideas":        "Generate content ideas (POST)",
			"/api/content":      "Compose a draft (POST)",
			"/api/seo":          "Score text for SEO (POST)",
			"/api/format":       "Format text for social platforms (POST)",
			"/api/hashtags":     "Generate hashtags (POST)",
			"/api/schedule":     "List (GET) or add (POST) scheduled posts",
			"/api/schedule/:id": "Delete a scheduled post (DELETE)",
			"/api/analytics":    "Usage counters",
			"/api/download":     "Download the latest draft",
		},
	})
}
