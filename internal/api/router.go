package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gridwatch/backend/internal/api/controllers"
	"github.com/gridwatch/backend/internal/api/middleware"
	"github.com/gridwatch/backend/internal/config"
	"github.com/gridwatch/backend/internal/db"
	"github.com/gridwatch/backend/internal/services"
	"github.com/gridwatch/backend/internal/utils"
)

// Router manages the API routes and controllers
type Router struct {
	engine              *gin.Engine
	logger              *utils.Logger
	config              *config.Config
	serviceProvider     *services.ServiceProvider
	db                  *db.Database
	telemetryController *controllers.TelemetryController
	faultController     *controllers.FaultController
	adminController     *controllers.AdminController
}

// NewRouter creates a new Router instance
func NewRouter(
	config *config.Config,
	logger *utils.Logger,
	db *db.Database,
	serviceProvider *services.ServiceProvider,
) *Router {
	// Set Gin mode based on environment
	if config.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Use the logger and recovery middleware
	engine.Use(gin.Recovery())
	engine.Use(middleware.LoggingMiddleware(logger))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Origin"}
	engine.Use(cors.New(corsConfig))

	// Dashboard templates
	if config.Server.TemplatesGlob != "" {
		engine.LoadHTMLGlob(config.Server.TemplatesGlob)
	}

	return &Router{
		engine:          engine,
		logger:          logger.Named("router"),
		config:          config,
		serviceProvider: serviceProvider,
		db:              db,
	}
}

// SetupRoutes configures all API routes
func (r *Router) SetupRoutes() {
	// Health check endpoint
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	ingestService := r.serviceProvider.GetIngestService()
	faultService := r.serviceProvider.GetFaultService()

	r.telemetryController = controllers.NewTelemetryController(ingestService, r.logger)
	r.faultController = controllers.NewFaultController(faultService, r.logger)
	r.adminController = controllers.NewAdminController(faultService, r.logger)

	// Device-facing and consumer-facing JSON endpoints
	apiRoutes := r.engine.Group("/api")
	r.telemetryController.RegisterRoutes(apiRoutes)
	r.faultController.RegisterRoutes(apiRoutes)

	// Human-facing dashboard pages
	adminRoutes := r.engine.Group("/admin")
	r.adminController.RegisterRoutes(adminRoutes)

	r.logger.Info("API routes setup completed")
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
