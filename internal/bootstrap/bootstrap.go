package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/placenet/placement-backend/internal/app/controllers"
	appMigrations "github.com/placenet/placement-backend/internal/app/migrations"
	appRepos "github.com/placenet/placement-backend/internal/app/repositories"
	appRoutes "github.com/placenet/placement-backend/internal/app/routes"
	appServices "github.com/placenet/placement-backend/internal/app/services"
	"github.com/placenet/placement-backend/internal/config"
	"github.com/placenet/placement-backend/internal/db"
	appMiddleware "github.com/placenet/placement-backend/internal/middleware"
	pkgAuth "github.com/placenet/placement-backend/internal/pkg/auth"
	"github.com/placenet/placement-backend/internal/pkg/email"
	"github.com/placenet/placement-backend/internal/pkg/filestorage"
	"github.com/placenet/placement-backend/internal/pkg/helpers"
	"github.com/placenet/placement-backend/internal/pkg/logger"
	"github.com/placenet/placement-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	UserService           appServices.UserService
	ApprovalService       appServices.ApprovalService
	CompanyService        appServices.CompanyService
	JobService            appServices.JobService
	ApplicationService    appServices.ApplicationService
	AttachmentService     appServices.AttachmentService
	NoticeService         appServices.NoticeService
	InternshipService     appServices.InternshipService
	AuthController        *appControllers.AuthController
	UserController        *appControllers.UserController
	ApprovalController    *appControllers.ApprovalController
	CompanyController     *appControllers.CompanyController
	JobController         *appControllers.JobController
	ApplicationController *appControllers.ApplicationController
	NoticeController      *appControllers.NoticeController
	InternshipController  *appControllers.InternshipController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	EmailService          email.EmailService
	FileStorage           *filestorage.LocalStorage
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.ApprovalService = appServices.NewApprovalService(deps.Repos.UserRepository, deps.EmailService, lgr)
	deps.CompanyService = appServices.NewCompanyService(deps.Repos.CompanyRepository, lgr)
	deps.JobService = appServices.NewJobService(
		dbPool,
		deps.Repos.JobRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.FileRepository,
		deps.FileStorage,
		lgr,
	)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.JobRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.AttachmentService = appServices.NewAttachmentService(
		db.NewTxManager(dbPool),
		deps.Repos.UserRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.FileRepository,
		deps.FileStorage,
		lgr,
	)
	deps.NoticeService = appServices.NewNoticeService(deps.Repos.NoticeRepository, lgr)
	deps.InternshipService = appServices.NewInternshipService(deps.Repos.InternshipRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService, deps.AttachmentService)
	deps.ApprovalController = appControllers.NewApprovalController(deps.ApprovalService, deps.AuthService)
	deps.CompanyController = appControllers.NewCompanyController(deps.CompanyService)
	deps.JobController = appControllers.NewJobController(deps.JobService)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService, deps.AttachmentService)
	deps.NoticeController = appControllers.NewNoticeController(deps.NoticeService)
	deps.InternshipController = appControllers.NewInternshipController(deps.InternshipService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ApprovalController,
		deps.CompanyController,
		deps.JobController,
		deps.ApplicationController,
		deps.NoticeController,
		deps.InternshipController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
