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

	appAuth "github.com/emre/tutorhub/internal/app/auth"
	appControllers "github.com/emre/tutorhub/internal/app/controllers"
	appMigrations "github.com/emre/tutorhub/internal/app/migrations"
	appRepos "github.com/emre/tutorhub/internal/app/repositories"
	appRoutes "github.com/emre/tutorhub/internal/app/routes"
	appServices "github.com/emre/tutorhub/internal/app/services"
	"github.com/emre/tutorhub/internal/config"
	"github.com/emre/tutorhub/internal/db"
	appMiddleware "github.com/emre/tutorhub/internal/middleware"
	pkgAuth "github.com/emre/tutorhub/internal/pkg/auth"
	"github.com/emre/tutorhub/internal/pkg/helpers"
	"github.com/emre/tutorhub/internal/pkg/logger"
	"github.com/emre/tutorhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	ProfileService         *appServices.ProfileService
	TutorService           *appServices.TutorService
	RelationshipService    *appServices.RelationshipService
	MessageService         *appServices.MessageService
	UserService            *appServices.UserService
	AuthController         *appControllers.AuthController
	ProfileController      *appControllers.ProfileController
	TutorController        *appControllers.TutorController
	RelationshipController *appControllers.RelationshipController
	MessageController      *appControllers.MessageController
	UserController         *appControllers.UserController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	Logger                 zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.Profile,
		deps.Repos.Tutor,
		deps.Repos.Student,
	)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.User,
		deps.Repos.Profile,
		deps.Repos.Token,
		deps.JWTService,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.User,
		deps.Repos.Profile,
		deps.Repos.Tutor,
		deps.Repos.Student,
		deps.AuthzService,
	)
	deps.TutorService = appServices.NewTutorService(deps.Repos.Tutor)
	deps.RelationshipService = appServices.NewRelationshipService(
		deps.Repos.Relationship,
		deps.Repos.Tutor,
		deps.Repos.Student,
		deps.AuthzService,
	)
	deps.MessageService = appServices.NewMessageService(
		deps.Repos.Message,
		deps.Repos.Relationship,
		deps.Repos.User,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.User, deps.Repos.Token)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.TutorController = appControllers.NewTutorController(deps.TutorService)
	deps.RelationshipController = appControllers.NewRelationshipController(deps.RelationshipService)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService)
	deps.UserController = appControllers.NewUserController(deps.UserService)

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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.TutorController,
		deps.RelationshipController,
		deps.MessageController,
		deps.UserController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
