package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/activity"
	"github.com/fabienpiette/recipe_finder/internal/config"
	"github.com/fabienpiette/recipe_finder/internal/middleware"
	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/server/handlers"
	"github.com/fabienpiette/recipe_finder/internal/services"
)

// HTTPServer represents the HTTP server
type HTTPServer struct {
	config    *config.Config
	container *services.Container
	router    *gin.Engine
	server    *http.Server
	logger    *logrus.Logger
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(cfg *config.Config, container *services.Container) *HTTPServer {
	switch cfg.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	server := &HTTPServer{
		config:    cfg,
		container: container,
		router:    router,
		logger:    container.GetLogger(),
	}

	server.setupMiddleware()
	server.setupRoutes()

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	return server
}

// Handler returns the configured router
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	s.logger.Infof("Starting HTTP server on %s", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestid.New())
	s.router.Use(middleware.Logger(s.logger))

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", activity.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", activity.SessionHeader},
		AllowCredentials: !allowsAnyOrigin(s.config.Server.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	if s.config.RateLimit.Enabled {
		s.router.Use(middleware.RateLimit(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst))
	}
}

func (s *HTTPServer) setupRoutes() {
	s.router.GET("/health", s.healthCheckHandler)
	s.router.NoRoute(func(c *gin.Context) {
		apiErr := models.NewAPIError(http.StatusNotFound, "Not Found", "Endpoint not found", c.Request.URL.Path)
		apiErr.RequestID = middleware.RequestID(c)
		c.JSON(http.StatusNotFound, apiErr)
	})

	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.Session())

	recipeHandler := handlers.NewRecipeHandler(s.container)
	v1.GET("/search", recipeHandler.Search)
	v1.GET("/recipes/:id", recipeHandler.GetRecipe)
	v1.POST("/recipes/:id/rate", recipeHandler.Rate)
	v1.GET("/recipes/:id/similar", recipeHandler.Similar)
	v1.GET("/categories/:name/recipes", recipeHandler.ByCategory)

	browseHandler := handlers.NewBrowseHandler(s.container)
	v1.GET("/popular", browseHandler.Popular)
	v1.GET("/quick-meals", browseHandler.QuickMeals)
	v1.GET("/featured", browseHandler.Featured)
	v1.GET("/categories", browseHandler.Categories)
	v1.GET("/tags", browseHandler.Tags)
	v1.GET("/stats", browseHandler.Stats)

	requireAuth := middleware.AuthRequired(s.container.GetJWTManager())

	authGroup := v1.Group("/auth")
	{
		authHandler := handlers.NewAuthHandler(s.container)
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/profile", requireAuth, authHandler.Profile)
		authGroup.PUT("/profile", requireAuth, authHandler.UpdateProfile)
	}

	favoritesGroup := v1.Group("/favorites")
	favoritesGroup.Use(requireAuth)
	{
		favoritesHandler := handlers.NewFavoritesHandler(s.container)
		favoritesGroup.GET("", favoritesHandler.List)
		favoritesGroup.POST("/:id", favoritesHandler.Add)
		favoritesGroup.DELETE("/:id", favoritesHandler.Remove)
		favoritesGroup.GET("/:id/check", favoritesHandler.Check)
	}
}

func (s *HTTPServer) healthCheckHandler(c *gin.Context) {
	health := s.container.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if health["status"] == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, health)
}

// allowsAnyOrigin reports whether the wildcard origin is configured.
// Credentialed requests are only allowed for explicit origins.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
