package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"home-service-booking/config"
	deliveryHttp "home-service-booking/internal/delivery/http"
	"home-service-booking/internal/delivery/http/handler"
	"home-service-booking/internal/delivery/http/middleware"
	"home-service-booking/internal/infrastructure/cache"
	"home-service-booking/internal/infrastructure/database"
	"home-service-booking/internal/infrastructure/messaging"
	"home-service-booking/internal/infrastructure/metrics"
	"home-service-booking/internal/repository"
	"home-service-booking/internal/service"
	"home-service-booking/internal/usecase"
	"home-service-booking/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	DB            *gorm.DB
	RedisClient   *redis.Client
	AMQPPublisher *messaging.Publisher
	Server        *http.Server
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

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Infof("Database connected successfully (%s)", cfg.DB.Driver)

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, cfg.DB.Driver); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logrus.Info("Database schema is up to date")
	}

	if cfg.App.SeedProviders {
		if _, err := database.SeedProviders(db, repository.NewProviderRepository()); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed providers: %w", err)
		}
	}

	notifier, err := app.initializeNotifier(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, notifier)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeNotifier connects the configured event sink
func (app *App) initializeNotifier(cfg *config.Config) (service.EventNotifier, error) {
	switch cfg.Notifier.Kind {
	case config.NotifierRedis:
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Infof("Publishing booking events to Redis channel %s", cfg.Notifier.RedisChannel)
		return service.NewRedisEventNotifier(redisClient, cfg.Notifier.RedisChannel), nil

	case config.NotifierAMQP:
		publisher, err := messaging.NewPublisher(cfg.Notifier.AMQPURL, cfg.Notifier.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.AMQPPublisher = publisher
		return service.NewAMQPEventNotifier(publisher), nil

	case config.NotifierNone, "":
		return service.NewNoopEventNotifier(), nil
	}

	return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier.Kind)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, notifier service.EventNotifier) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	bookingRepo := repository.NewBookingRepository()
	eventRepo := repository.NewBookingEventRepository()
	providerRepo := repository.NewProviderRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize metrics
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// Initialize services
	recorder := service.NewEventRecorder(log, eventRepo)

	// Initialize usecases
	lifecycleUsecase := usecase.NewBookingLifecycleUsecase(db, log, bookingRepo, eventRepo, recorder, notifier, m)
	assignmentUsecase := usecase.NewAssignmentUsecase(db, log, providerRepo, lifecycleUsecase, m, cfg.Assignment, time.Sleep)
	bookingUsecase := usecase.NewBookingUsecase(db, log, lifecycleUsecase, assignmentUsecase, providerRepo)
	providerUsecase := usecase.NewProviderUsecase(db, log, providerRepo, bookingRepo)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	providerHandler := handler.NewProviderHandler(providerUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(bookingUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(bookingHandler, providerHandler, adminHandler, promhttp.Handler(), corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
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

	// Assignment retries may hold a request for several seconds
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, rabbitmq)
func (app *App) Close() {
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

	if app.AMQPPublisher != nil {
		if err := app.AMQPPublisher.Close(); err != nil {
			logrus.Warnf("Failed to close RabbitMQ publisher: %v", err)
		}
	}
}
