package app

import (
	"context"
	"fmt"

	"broadcast_backend/database"
	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/config"
	"broadcast_backend/internal/handlers"
	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/middleware"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/routes"
	"broadcast_backend/internal/services"
	"broadcast_backend/internal/validator"
	"broadcast_backend/internal/workers"
	"broadcast_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Bootstrap загружает конфиг, инициализирует логгер и открывает БД
func Bootstrap() (*config.Config, *gorm.DB) {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.InitWithLevel(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")
	return cfg, gormDB
}

// Migrate - только миграция и начальные данные, без запуска сервера
func Migrate() {
	cfg, gormDB := Bootstrap()
	if _, err := database.Prepare(gormDB, cfg); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migration finished")
}

func Run() {
	cfg, gormDB := Bootstrap()

	siteContextID, err := database.Prepare(gormDB, cfg)
	if err != nil {
		logger.Fatal("Failed to prepare database", "error", err)
	}
	if siteContextID != cfg.Broadcast.SiteContextID {
		logger.Warn("Configured site context differs from the database, using the database one",
			"configured", cfg.Broadcast.SiteContextID, "actual", siteContextID)
		cfg.Broadcast.SiteContextID = siteContextID
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewBroadcastWorker(gormDB, repositories.NewBroadcastRepository(), cfg.StatsInterval()).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.Server.Env != "production")

	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	// --- Репозитории ---
	contextRepo := repositories.NewContextRepository()
	userRepo := repositories.NewUserRepository()
	broadcastRepo := repositories.NewBroadcastRepository()
	catalogRepo := repositories.NewCatalogRepository()

	// --- Сервисы ---
	contextService := services.NewContextService(contextRepo, cfg.Broadcast.SiteContextID, cfg.ContextCacheTTL())
	checker := auth.NewChecker(contextService, userRepo)

	broadcastService := services.NewBroadcastService(broadcastRepo, userRepo, contextService, checker, services.BroadcastSettings{
		Location:       cfg.Location(),
		PollMinSeconds: cfg.Broadcast.PollMinSeconds,
		PollMaxSeconds: cfg.Broadcast.PollMaxSeconds,
	})
	catalogService := services.NewCatalogService(catalogRepo, contextRepo, userRepo, contextService)
	reportService := services.NewReportService(broadcastRepo, contextService, checker)
	privacyService := services.NewPrivacyService(broadcastRepo, userRepo, contextService)
	userService := services.NewUserService(userRepo, contextService)
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWTTTL())

	return &services.ServiceContainer{
		ContextService:   contextService,
		BroadcastService: broadcastService,
		CatalogService:   catalogService,
		ReportService:    reportService,
		PrivacyService:   privacyService,
		UserService:      userService,
		AuthService:      authService,
		Checker:          checker,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	baseHandler := handlers.NewBaseHandler(customValidator, authMiddleware)

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, services.AuthService, services.UserService),
		BroadcastHandler: handlers.NewBroadcastHandler(baseHandler, services.BroadcastService),
		ReportHandler:    handlers.NewReportHandler(baseHandler, services.ReportService),
		CatalogHandler:   handlers.NewCatalogHandler(baseHandler, services.CatalogService),
		PrivacyHandler:   handlers.NewPrivacyHandler(baseHandler, services.PrivacyService),
		HealthHandler:    handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
