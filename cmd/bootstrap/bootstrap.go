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

	"hospital-management-api/config"
	deliveryHttp "hospital-management-api/internal/delivery/http"
	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/infrastructure/cache"
	"hospital-management-api/internal/infrastructure/database"
	"hospital-management-api/internal/infrastructure/mail"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/jwt"
	"hospital-management-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Container   *Container
	Server      *http.Server
	Log         *logrus.Logger
}

// Container is the wired object graph. Tests build it over SQLite and miniredis.
type Container struct {
	AdminUsecase usecase.AdminUsecase
	Validator    *validator.CustomValidator
	Handler      http.Handler
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{Log: setupLogger()}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	mailer := mail.NewMailer(cfg.SMTP, app.Log)
	app.Container = NewContainer(cfg, db, redisClient, mailer, app.Log)
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           app.Container.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	return logrus.StandardLogger()
}

// NewContainer wires repositories, services, usecases and handlers into a router.
func NewContainer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mailer mail.Mailer, log *logrus.Logger) *Container {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	patientRepo := repository.NewPatientRepository()
	assignmentRepo := repository.NewAssignmentRepository()
	catalogRepo := repository.NewMedicineCatalogRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	doctorReportRepo := repository.NewDoctorReportRepository()
	nurseReportRepo := repository.NewNurseReportRepository()
	rayRepo := repository.NewRayRepository()
	medicineRepo := repository.NewMedicineRepository()
	recordCleaners := []usecase.RecordCleaner{doctorReportRepo, nurseReportRepo, rayRepo, medicineRepo}

	// Initialize services
	tokenStore := service.NewTokenStore(redisClient)
	otpLimiter := service.NewOTPAttemptLimiter(redisClient, cfg.OTP.TTL)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileRepo, jwtService, tokenStore, otpLimiter, auditService, mailer, cfg.OTP)
	adminUsecase := usecase.NewAdminUsecase(db, log, userRepo, profileRepo, patientRepo, tokenStore, auditService, mailer)
	staffUsecase := usecase.NewStaffUsecase(db, log, userRepo, profileRepo, assignmentRepo, recordCleaners, tokenStore, auditService)
	assignmentUsecase := usecase.NewAssignmentUsecase(db, log, userRepo, profileRepo, assignmentRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, userRepo, assignmentRepo, recordCleaners, auditService)
	doctorReportUsecase := usecase.NewDoctorReportUsecase(db, log, doctorReportRepo, patientRepo, profileRepo, auditService)
	nurseReportUsecase := usecase.NewNurseReportUsecase(db, log, nurseReportRepo, patientRepo, profileRepo, auditService)
	rayUsecase := usecase.NewRayUsecase(db, log, rayRepo, patientRepo, profileRepo, auditService)
	medicineUsecase := usecase.NewMedicineUsecase(db, log, medicineRepo, catalogRepo, patientRepo, profileRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		handler.NewAuthHandler(authUsecase, customValidator),
		handler.NewAdminHandler(adminUsecase, customValidator),
		handler.NewStaffHandler(staffUsecase, patientUsecase, customValidator),
		handler.NewAssignmentHandler(assignmentUsecase, customValidator),
		handler.NewPatientHandler(patientUsecase, customValidator),
		handler.NewReportHandler(doctorReportUsecase, nurseReportUsecase, customValidator),
		handler.NewRayHandler(rayUsecase, customValidator),
		handler.NewMedicineHandler(medicineUsecase, customValidator),
		handler.NewAuditLogHandler(auditLogUsecase),
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)

	return &Container{
		AdminUsecase: adminUsecase,
		Validator:    customValidator,
		Handler:      router.Setup(),
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
