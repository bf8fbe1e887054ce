package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/database"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/routes"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.Debug = cfg.Server.Env == "development"

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedSingletons(gormDB); err != nil {
		logger.Fatal("Failed to seed singletons", "error", err)
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

// NewStorage builds the managed-file backend described by cfg. It returns
// (nil, nil) when no backend is configured.
func NewStorage(cfg *config.Config) (storage.Storage, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:            cfg.Storage.Type,
		BasePath:        cfg.Storage.BasePath,
		BaseURL:         cfg.Storage.BaseURL,
		Bucket:          cfg.Storage.Bucket,
		Region:          cfg.Storage.Region,
		AccessKey:       cfg.Storage.AccessKey,
		SecretKey:       cfg.Storage.SecretKey,
		Endpoint:        cfg.Storage.Endpoint,
		UseSSL:          cfg.Storage.UseSSL,
		PublicRead:      cfg.Storage.PublicRead,
		CredentialsFile: cfg.Storage.CredentialsFile,
	})
	if err != nil {
		return nil, err
	}
	if storageInstance == nil {
		logger.Warn("No storage backend configured; uploads stay in the database")
	} else {
		logger.Info("Storage initialized", "type", cfg.Storage.Type)
	}
	return storageInstance, nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, error) {
	storageInstance, err := NewStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return NewRouter(cfg, gormDB, storageInstance), nil
}

// NewRouter wires services and handlers around an already built storage backend
func NewRouter(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *gin.Engine {
	uploadConfig := uploadConfigFrom(cfg)

	serviceContainer := initializeServices(storageInstance, uploadConfig)
	appHandlers := initializeHandlers(serviceContainer, uploadConfig)

	ginRouter := initializeGinRouter(cfg, gormDB)

	if local, ok := storageInstance.(*storage.LocalStorage); ok && cfg.Storage.BaseURL == "" {
		ginRouter.Static("/files", local.BasePath())
	}

	routes.RegisterRoutes(ginRouter, appHandlers, cfg.Admin.Token)
	routes.RegisterHealth(ginRouter, gormDB)

	return ginRouter
}

func uploadConfigFrom(cfg *config.Config) services.UploadConfig {
	uploadConfig := services.GetDefaultUploadConfig()
	if cfg.Upload.MaxSize > 0 {
		uploadConfig.MaxSize = cfg.Upload.MaxSize
	}
	if cfg.Upload.DefaultMime != "" {
		uploadConfig.DefaultMime = cfg.Upload.DefaultMime
	}
	return uploadConfig
}

func initializeServices(storageInstance storage.Storage, uploadConfig services.UploadConfig) *services.ServiceContainer {
	mediaRepo := repositories.NewMediaRepository()
	imageRepo := repositories.NewImageRepository()
	collectionRepo := repositories.NewCollectionRepository()
	singletonRepo := repositories.NewSingletonRepository()
	contentRepo := repositories.NewContentRepository()
	contactRepo := repositories.NewContactRepository()

	mediaService := services.NewMediaService(mediaRepo, storageInstance, uploadConfig)
	imageService := services.NewImageService(imageRepo, mediaService, storageInstance, uploadConfig)
	collectionService := services.NewCollectionService(collectionRepo, imageService, mediaService)
	singletonService := services.NewSingletonService(singletonRepo, contentRepo)
	contentService := services.NewContentService(contentRepo, singletonService, imageService, mediaService)
	contactService := services.NewContactService(contactRepo)

	return &services.ServiceContainer{
		MediaService:      mediaService,
		ImageService:      imageService,
		CollectionService: collectionService,
		SingletonService:  singletonService,
		ContentService:    contentService,
		ContactService:    contactService,
		Storage:           storageInstance,
	}
}

func initializeHandlers(services *services.ServiceContainer, uploadConfig services.UploadConfig) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, uploadConfig)

	return &handlers.AppHandlers{
		ContentHandler:    handlers.NewContentHandler(baseHandler, services.ContentService),
		ImageHandler:      handlers.NewImageHandler(baseHandler, services.ImageService),
		MediaHandler:      handlers.NewMediaHandler(baseHandler, services.MediaService),
		CollectionHandler: handlers.NewCollectionHandler(baseHandler, services.CollectionService),
		ContactHandler:    handlers.NewContactHandler(baseHandler, services.ContactService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedSingletons makes sure the profile and the site configuration rows exist
func seedSingletons(db *gorm.DB) error {
	singletonRepo := repositories.NewSingletonRepository()
	seedDB := db.WithContext(context.Background())

	if _, err := singletonRepo.GetOrCreateProfile(seedDB); err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}
	if _, err := singletonRepo.GetOrCreateSiteConfiguration(seedDB); err != nil {
		return fmt.Errorf("failed to seed site configuration: %w", err)
	}
	logger.Info("Singletons ready")
	return nil
}
