package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/quotecraft/quotecraft-api/internal/application/service"
	"github.com/quotecraft/quotecraft-api/internal/config"
	"github.com/quotecraft/quotecraft-api/internal/infrastructure/database"
	"github.com/quotecraft/quotecraft-api/internal/infrastructure/repository"
	"github.com/quotecraft/quotecraft-api/internal/presentation/http/handler"
	"github.com/quotecraft/quotecraft-api/internal/presentation/http/routes"
	"github.com/quotecraft/quotecraft-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	assemblyRepo := repository.NewAssemblyRepository(db)
	laborTypeRepo := repository.NewLaborTypeRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	// Initialize services
	defaults := service.PricingDefaults{
		MarginPercent: cfg.Pricing.DefaultMarginPercent,
		DayRateILS:    cfg.Pricing.DefaultDayRateILS,
		RateUSDToILS:  cfg.Pricing.DefaultRateUSDToILS,
		RateEURToILS:  cfg.Pricing.DefaultRateEURToILS,
	}
	authService := service.NewAuthService(userRepo, jwtManager)
	numberingService := service.NewNumberingService(sequenceRepo)
	snapshotService := service.NewSnapshotService(componentRepo, assemblyRepo, laborTypeRepo)
	quotationService := service.NewQuotationService(quotationRepo, numberingService, defaults)
	itemService := service.NewItemService(quotationRepo, snapshotService)
	catalogService := service.NewCatalogService(componentRepo, assemblyRepo, laborTypeRepo, snapshotService, defaults)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Quotation: handler.NewQuotationHandler(quotationService),
		Item:      handler.NewItemHandler(itemService),
		Catalog:   handler.NewCatalogHandler(catalogService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
