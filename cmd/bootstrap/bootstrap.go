package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blood-bank-api/config"
	deliveryHttp "blood-bank-api/internal/delivery/http"
	"blood-bank-api/internal/delivery/http/handler"
	"blood-bank-api/internal/delivery/http/middleware"
	"blood-bank-api/internal/infrastructure/cache"
	"blood-bank-api/internal/infrastructure/database"
	"blood-bank-api/internal/infrastructure/messaging"
	"blood-bank-api/internal/repository"
	"blood-bank-api/internal/service"
	"blood-bank-api/internal/usecase"
	"blood-bank-api/pkg/jwt"
	"blood-bank-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Publisher   service.EventPublisher
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Infof("Database connected successfully (driver: %s)", cfg.DB.Driver)

	// Schema and seed data. Postgres deployments normally run cmd/migrator instead.
	if cfg.DB.AutoMigrate || cfg.DB.Driver == config.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		if err := database.Seed(db, log, cfg.Seed, repository.NewUserRepository(), repository.NewBloodInventoryRepository()); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
		log.Info("Database migrated and seeded")
	}

	// Token revocation store
	var revoker service.TokenRevoker
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		revoker = service.NewRedisTokenRevoker(log, redisClient)
		log.Info("Redis connected successfully")
	} else {
		revoker = service.NewMemoryTokenRevoker()
		log.Warn("REDIS_HOST is empty, revoked tokens are kept in memory")
	}

	// Domain events
	if len(cfg.Kafka.Brokers) > 0 {
		writer, err := messaging.NewKafkaWriter(cfg.Kafka, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create Kafka writer: %w", err)
		}
		app.Publisher = service.NewKafkaEventPublisher(log, writer)
		log.Infof("Publishing events to Kafka topic %s", cfg.Kafka.Topic)
	} else {
		app.Publisher = service.NewNoopEventPublisher(log)
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, log, revoker, app.Publisher)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	db *gorm.DB,
	log *logrus.Logger,
	revoker service.TokenRevoker,
	publisher service.EventPublisher,
) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	donorRepo := repository.NewDonorRepository()
	hospitalRepo := repository.NewHospitalRepository()
	inventoryRepo := repository.NewBloodInventoryRepository()
	requestRepo := repository.NewBloodRequestRepository()
	donationRepo := repository.NewDonationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, revoker, auditService)
	donorUsecase := usecase.NewDonorUsecase(db, log, donorRepo, donationRepo, inventoryRepo, auditService, publisher)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, hospitalRepo, requestRepo, auditService, publisher)
	bloodRequestUsecase := usecase.NewBloodRequestUsecase(db, log, requestRepo, inventoryRepo, auditService, publisher)
	adminUsecase := usecase.NewAdminUsecase(db, log, donorRepo, hospitalRepo, donationRepo, requestRepo, inventoryRepo)
	inventoryUsecase := usecase.NewInventoryUsecase(db, log, inventoryRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	donorHandler := handler.NewDonorHandler(donorUsecase, customValidator)
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase, bloodRequestUsecase, inventoryUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, revoker, log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, donorHandler, hospitalHandler, adminHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close flushes the event publisher and closes all connections
func (app *App) Close() {
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			logrus.Warnf("Failed to close event publisher: %v", err)
		}
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
