package app

import (
	"fmt"

	"assiduous_backend/internal/config"
	"assiduous_backend/internal/handlers"
	"assiduous_backend/internal/imageprocessor"
	"assiduous_backend/internal/imagesource"
	"assiduous_backend/internal/logger"
	"assiduous_backend/internal/middleware"
	"assiduous_backend/internal/models"
	"assiduous_backend/internal/repositories"
	"assiduous_backend/internal/routes"
	"assiduous_backend/internal/services"
	"assiduous_backend/internal/storage"
	"assiduous_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.Property{},
		&models.APIKey{},
		&models.IngestionLog{},
		&models.IngestionError{},
		&models.CleanupLog{},
	); err != nil {
		logger.Fatal("Failed to migrate schema", "error", err)
	}

	ginRouter, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the engine with every dependency injected
// explicitly, so tests can substitute fakes without global state.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, nil
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	propertyRepo := repositories.NewPropertyRepository(gormDB)
	apiKeyRepo := repositories.NewAPIKeyRepository(gormDB)
	auditRepo := repositories.NewIngestionLogRepository(gormDB)

	resolver := imagesource.NewResolver(cfg.FetchTimeout(), cfg.Ingest.MaxImageBytes)
	processor := imageprocessor.NewProcessor(cfg.Ingest.MaxImageDimension, cfg.Ingest.JPEGQuality)

	imageService := services.NewImageService(resolver, processor, storageInstance)
	ingestService := services.NewIngestService(propertyRepo, auditRepo, imageService, cfg.Ingest.ChunkSize)
	apiKeyService := services.NewAPIKeyService(apiKeyRepo)

	return &services.ServiceContainer{
		ImageService:  imageService,
		IngestService: ingestService,
		APIKeyService: apiKeyService,
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		PropertyHandler: handlers.NewPropertyHandler(baseHandler, container.IngestService, container.APIKeyService),
		APIKeyHandler:   handlers.NewAPIKeyHandler(baseHandler, container.APIKeyService, cfg.JWT.Secret),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
