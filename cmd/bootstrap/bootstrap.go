package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blood-donation-api/config"
	deliveryHttp "blood-donation-api/internal/delivery/http"
	"blood-donation-api/internal/delivery/http/handler"
	"blood-donation-api/internal/delivery/http/middleware"
	"blood-donation-api/internal/infrastructure/ai"
	"blood-donation-api/internal/infrastructure/cache"
	"blood-donation-api/internal/infrastructure/database"
	"blood-donation-api/internal/infrastructure/queue"
	"blood-donation-api/internal/infrastructure/sheets"
	"blood-donation-api/internal/infrastructure/storage"
	"blood-donation-api/internal/repository"
	"blood-donation-api/internal/service"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/jwt"
	"blood-donation-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const mapLinkTimeout = 5 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Scheduler   *queue.Scheduler
	Worker      *queue.Worker
	log         *logrus.Logger
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	ctx := context.Background()
	log := setupLogger()
	app := &App{log: log}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations applied")
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	fileStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	var chatModel usecase.ChatModel
	if cfg.AI.APIKey != "" {
		model, err := ai.NewGeminiModel(ctx, cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize chat model: %w", err)
		}
		chatModel = model
	} else {
		log.Warn("AI_API_KEY is empty, chat assistant disabled")
	}

	server, syncService, err := initializeServer(cfg, log, db, redisClient, fileStorage, chatModel)
	if err != nil {
		return nil, err
	}
	app.Server = server

	// Sheet sync runs on asynq, sharing the Redis instance
	redisOpt := queue.RedisOpt(cfg.Redis)
	scheduler, err := queue.NewScheduler(redisOpt, cfg.Sheets.Cron, log)
	if err != nil {
		return nil, fmt.Errorf("failed to register sheet sync schedule: %w", err)
	}
	app.Scheduler = scheduler
	app.Worker = queue.NewWorker(redisOpt, syncService, log)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}

func newSheetClient(ctx context.Context, cfg config.SheetsConfig, log *logrus.Logger) service.SheetClient {
	if cfg.SpreadsheetID == "" {
		return nil
	}
	client, err := sheets.NewClient(ctx, cfg)
	if err != nil {
		if errors.Is(err, sheets.ErrNoCredentials) {
			log.Warn("Google credentials not found, sheet sync disabled")
		} else {
			log.Warnf("Failed to create sheets client: %+v", err)
		}
		return nil
	}
	return client
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	fileStorage storage.FileStorage,
	chatModel usecase.ChatModel,
) (*http.Server, *service.SheetSyncService, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	locationRepo := repository.NewLocationRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	questionnaireRepo := repository.NewQuestionnaireRepository()
	adminRepo := repository.NewAdminRepository()
	bloodStorageRepo := repository.NewBloodStorageRepository()
	conversationRepo := repository.NewConversationRepository()
	messageRepo := repository.NewMessageRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	syncService := service.NewSheetSyncService(
		db, log,
		newSheetClient(context.Background(), cfg.Sheets, log),
		cfg.Sheets.SpreadsheetID,
		service.NewMapLinkResolver(mapLinkTimeout),
		userRepo, locationRepo, appointmentRepo,
		auditService,
	)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, auditService)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, auditService, fileStorage)
	locationUsecase := usecase.NewLocationUsecase(db, log, locationRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, questionnaireRepo, locationRepo, auditService)
	chatUsecase := usecase.NewChatUsecase(db, log, chatModel, userRepo, conversationRepo, messageRepo)
	adminUsecase := usecase.NewAdminUsecase(db, log, adminRepo, auditService)
	bloodStorageUsecase := usecase.NewBloodStorageUsecase(db, log, bloodStorageRepo, auditService)
	adminUserUsecase := usecase.NewAdminUserUsecase(db, log, userRepo, auditService, fileStorage)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Health:      handler.NewHealthHandler(db, log),
		Auth:        handler.NewAuthHandler(authUsecase, customValidator, jwtService, log, cfg.App.CookieSecure),
		Profile:     handler.NewProfileHandler(profileUsecase, customValidator, log),
		Location:    handler.NewLocationHandler(locationUsecase, customValidator, log),
		Appointment: handler.NewAppointmentHandler(appointmentUsecase, customValidator, log),
		Chat:        handler.NewChatHandler(chatUsecase, customValidator, log),
		Admin:       handler.NewAdminHandler(adminUsecase, bloodStorageUsecase, customValidator, log),
		AdminUser:   handler.NewAdminUserHandler(adminUserUsecase, customValidator, log),
		AuditLog:    handler.NewAuditLogHandler(auditLogUsecase, log),
	}

	// Initialize middleware
	rateLimit, err := middleware.NewRateLimiter(cfg.RateLimit.Auth, redisClient, log)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid RATE_LIMIT_AUTH: %w", err)
	}
	middlewares := deliveryHttp.Middlewares{
		Auth:      middleware.NewAuthMiddleware(jwtService, log),
		Admin:     middleware.NewAdminMiddleware(adminUsecase, cfg.Admin.BootstrapKey, log),
		CORS:      middleware.NewCORSMiddleware(),
		Logging:   middleware.NewLoggingMiddleware(log),
		Secure:    middleware.NewSecure(cfg.App.Env == "development"),
		RateLimit: rateLimit,
	}

	uploadDir := ""
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		uploadDir = cfg.Storage.UploadDir
	}

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, middlewares, uploadDir)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, syncService, nil
}

// Run starts the HTTP server and the sheet sync jobs, then handles graceful shutdown
func (app *App) Run() {
	if err := app.Worker.Start(); err != nil {
		app.log.Errorf("Failed to start sheet sync worker: %v", err)
	}
	if err := app.Scheduler.Start(); err != nil {
		app.log.Errorf("Failed to start sheet sync scheduler: %v", err)
	}

	// Start server in goroutine
	go func() {
		app.log.Infof("Server starting on port %s", app.Config.App.Port)
		app.log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.log.Fatalf("Failed to start server: %v", err)
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

	app.log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.log.Info("Server shutdown complete")
}

// Close stops the sync jobs and closes all connections (database, redis)
func (app *App) Close() {
	if app.Scheduler != nil {
		app.Scheduler.Shutdown()
	}
	if app.Worker != nil {
		app.Worker.Shutdown()
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
