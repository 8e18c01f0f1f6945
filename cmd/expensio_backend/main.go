package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/expensio/expensio_backend/internal/adapters/database/pgsql"
	"github.com/expensio/expensio_backend/internal/adapters/extraction/gemini"
	"github.com/expensio/expensio_backend/internal/adapters/rates"
	"github.com/expensio/expensio_backend/internal/adapters/storage/drive"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/core/services"
	"github.com/expensio/expensio_backend/internal/handlers"
	"github.com/expensio/expensio_backend/internal/middleware"
	"github.com/expensio/expensio_backend/internal/utils"
	"github.com/expensio/expensio_backend/pkg/config"
	"github.com/expensio/expensio_backend/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer, err := buildServices(ctx, cfg, dbPool, logger)
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registerCustomValidators()

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimitFormatted)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	analyticsClient := utils.NewAnalyticsClient(cfg.PosthogAPIKey, logger)
	defer analyticsClient.Close()
	r.Use(middleware.AnalyticsMiddleware(analyticsClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Block until an interrupt, then drain in-flight requests.
	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server exited.")
}

// buildServices wires repositories and external adapters into the service container.
func buildServices(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger) (*portssvc.ServiceContainer, error) {
	expenseRepo := pgsql.NewExpenseRepository(dbPool)
	auditRepo := pgsql.NewAuditRepository(dbPool)
	userRepo := pgsql.NewUserRepository(dbPool)
	categoryRepo := pgsql.NewCategoryRepository(dbPool)
	departmentRepo := pgsql.NewDepartmentRepository(dbPool)

	receiptStorage, err := drive.NewReceiptStorage(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID)
	if err != nil {
		return nil, err
	}
	fieldExtractor := gemini.NewFieldExtractor(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	rateClient := rates.NewExchangeRateClient(cfg.ExchangeRateTimeout)

	logger.Info("External adapters initialized",
		slog.String("gemini_model", cfg.GeminiModel),
		slog.String("drive_folder", cfg.DriveFolderID))

	return &portssvc.ServiceContainer{
		Expense:    services.NewExpenseService(expenseRepo, auditRepo, userRepo, categoryRepo, rateClient),
		Receipt:    services.NewReceiptService(receiptStorage, fieldExtractor, categoryRepo, userRepo, cfg.ReceiptMaxBytes, cfg.ReceiptBranchTimeout),
		Dashboard:  services.NewDashboardService(expenseRepo, departmentRepo, categoryRepo, userRepo),
		Category:   services.NewCategoryService(categoryRepo, userRepo),
		Department: services.NewDepartmentService(departmentRepo, userRepo),
		User:       services.NewUserService(userRepo, departmentRepo),
		Auth:       services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryDuration),
	}, nil
}

// runMigrations applies all pending "up" migrations using a standalone
// database/sql connection, compatible with the pgx pool.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// registerCustomValidators adds binding validators not shipped with the
// validator library.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// notblank rejects strings that are only whitespace; "required" alone
	// accepts them.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
