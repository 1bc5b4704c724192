package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "latrack/docs"
	"latrack/internal/config"
	"latrack/internal/domain"
	"latrack/internal/handler"
	"latrack/internal/middleware"
	"latrack/internal/service"
)

// Handlers bundles everything Setup needs to wire the routes.
type Handlers struct {
	Auth       *handler.AuthHandler
	Assessment *handler.AssessmentHandler
	Evidence   *handler.EvidenceHandler
	Review     *handler.ReviewHandler
	Catalog    *handler.CatalogHandler
	Commune    *handler.CommuneHandler
	User       *handler.UserHandler
	Period     *handler.PeriodHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, authSvc service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)

	// Active period and its catalog are readable by any authenticated user
	protected.GET("/periods/active", h.Period.GetActive)
	protected.GET("/periods/:id/catalog", h.Catalog.Get)

	// Commune-side assessment routes
	assessments := protected.Group("/assessments")
	assessments.POST("/open", middleware.RequireRole(domain.RoleCommune), h.Assessment.Open)
	assessments.GET("/:id", h.Assessment.GetByID)
	assessments.PUT("/:id/indicators", h.Assessment.UpdateIndicator)
	assessments.POST("/:id/submit-registration", middleware.RequireRole(domain.RoleCommune), h.Assessment.SubmitRegistration)
	assessments.POST("/:id/submit", middleware.RequireRole(domain.RoleCommune), h.Assessment.SubmitForReview)
	assessments.POST("/:id/evidence", h.Evidence.Upload)
	assessments.DELETE("/:id/evidence", h.Evidence.Delete)
	assessments.GET("/:id/evidence/download-url", h.Evidence.DownloadURL)

	// Admin review routes
	review := protected.Group("/review")
	review.Use(middleware.RequireRole(domain.RoleAdmin))
	review.GET("/queue", h.Review.Queue)
	review.GET("/queue/export", h.Review.ExportQueue)
	review.POST("/:id/registration", h.Review.DecideRegistration)
	review.POST("/:id/return", h.Review.ReturnForRevision)
	review.POST("/:id/decision", h.Review.Decide)
	review.DELETE("/:id", h.Review.Delete)

	// Admin management routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.POST("/communes", h.Commune.Create)
	admin.GET("/communes", h.Commune.List)
	admin.GET("/communes/:id", h.Commune.GetByID)
	admin.PUT("/communes/:id", h.Commune.Update)
	admin.DELETE("/communes/:id", h.Commune.Delete)

	admin.POST("/users", h.User.Create)
	admin.GET("/users", h.User.List)
	admin.GET("/users/:id", h.User.GetByID)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Delete)

	admin.POST("/periods", h.Period.Create)
	admin.GET("/periods", h.Period.List)
	admin.GET("/periods/:id", h.Period.GetByID)
	admin.PUT("/periods/:id", h.Period.Update)
	admin.POST("/periods/:id/activate", h.Period.Activate)
	admin.POST("/periods/:id/close", h.Period.Close)
	admin.PUT("/periods/:id/catalog", h.Catalog.Replace)

	return r
}
