package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quotecraft/quotecraft-api/internal/config"
	"github.com/quotecraft/quotecraft-api/internal/presentation/http/handler"
	"github.com/quotecraft/quotecraft-api/internal/presentation/http/middleware"
	"github.com/quotecraft/quotecraft-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Quotation *handler.QuotationHandler
	Item      *handler.ItemHandler
	Catalog   *handler.CatalogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)

	// Quotations
	quotations := protected.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.POST("", h.Quotation.Create)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.DELETE("/:id", h.Quotation.Delete)
		quotations.PUT("/:id/parameters", h.Quotation.UpdateParameters)
		quotations.PUT("/:id/status", h.Quotation.UpdateStatus)
		quotations.POST("/:id/versions", h.Quotation.NewVersion)

		// Systems
		quotations.POST("/:id/systems", h.Item.AddSystem)
		quotations.PUT("/:id/systems/:systemId", h.Item.RenameSystem)
		quotations.DELETE("/:id/systems/:systemId", h.Item.DeleteSystem)

		// Line items
		quotations.POST("/:id/items", h.Item.AddItem)
		quotations.PUT("/:id/items/:itemId", h.Item.UpdateItem)
		quotations.DELETE("/:id/items/:itemId", h.Item.DeleteItem)
		quotations.PUT("/:id/items/:itemId/position", h.Item.MoveItem)
	}

	// Catalog: components
	components := protected.Group("/components")
	{
		components.GET("", h.Catalog.ListComponents)
		components.POST("", h.Catalog.CreateComponent)
		components.GET("/:id", h.Catalog.GetComponent)
		components.PUT("/:id", h.Catalog.UpdateComponent)
		components.DELETE("/:id", h.Catalog.DeleteComponent)
	}

	// Catalog: assemblies
	assemblies := protected.Group("/assemblies")
	{
		assemblies.GET("", h.Catalog.ListAssemblies)
		assemblies.POST("", h.Catalog.CreateAssembly)
		assemblies.GET("/:id", h.Catalog.GetAssembly)
		assemblies.PUT("/:id", h.Catalog.UpdateAssembly)
		assemblies.PUT("/:id/members", h.Catalog.ReplaceMembers)
		assemblies.DELETE("/:id", h.Catalog.DeleteAssembly)
	}

	// Catalog: labor types
	laborTypes := protected.Group("/labor-types")
	{
		laborTypes.GET("", h.Catalog.ListLaborTypes)
		laborTypes.POST("", h.Catalog.CreateLaborType)
		laborTypes.GET("/:id", h.Catalog.GetLaborType)
		laborTypes.PUT("/:id", h.Catalog.UpdateLaborType)
		laborTypes.DELETE("/:id", h.Catalog.DeleteLaborType)
	}
}
