package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studyshare/internal/app/controllers"
	appRepos "github.com/yigit/studyshare/internal/app/repositories"
	appRoutes "github.com/yigit/studyshare/internal/app/routes"
	appServices "github.com/yigit/studyshare/internal/app/services"
	"github.com/yigit/studyshare/internal/config"
	appMiddleware "github.com/yigit/studyshare/internal/middleware"
	pkgAuth "github.com/yigit/studyshare/internal/pkg/auth"
	"github.com/yigit/studyshare/internal/pkg/filestorage"
	"github.com/yigit/studyshare/internal/pkg/helpers"
	"github.com/yigit/studyshare/internal/pkg/logger"
	"github.com/yigit/studyshare/internal/pkg/session"
	"github.com/yigit/studyshare/internal/seed"
)

// multipart overhead allowed on top of the file size limit
const uploadBodySlack = 1 << 20

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store       *appRepos.MemStorage
	Repos       *appRepos.Repositories
	FileStorage *filestorage.LocalStorage
	Sessions    *session.Manager
	Services    *appServices.Services

	AuthController     *appControllers.AuthController
	CategoryController *appControllers.CategoryController
	NoteController     *appControllers.NoteController
	RatingController   *appControllers.RatingController
	AuthMiddleware     *appMiddleware.AuthMiddleware

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Str("logFile", cfg.Logging.File).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from the logging section
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
		File:   cfg.Logging.File,
	})
}

// BuildDependencies initializes the store, repositories, services and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Store = appRepos.NewMemStorage()
	deps.Repos = appRepos.NewRepositories(deps.Store)
	seed.CreateDefaultData(deps.Repos.CategoryRepository, lgr)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, lgr.With().Str("component", "filestorage").Logger())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	sessionTTL := helpers.ParseDuration(cfg.Session.MaxAge, 7*24*time.Hour)
	deps.Sessions = session.NewManager(
		session.NewStore(
			sessionTTL,
			helpers.ParseDuration(cfg.Session.CleanupInterval, 24*time.Hour),
			lgr.With().Str("component", "session").Logger(),
		),
		pkgAuth.NewTokenService(pkgAuth.TokenConfig{
			SecretKey:   cfg.Session.Secret,
			TokenExp:    sessionTTL,
			TokenIssuer: cfg.Session.Issuer,
		}),
	)

	deps.Services = appServices.NewServices(
		deps.Repos,
		deps.FileStorage,
		deps.Sessions,
		appServices.UploadPolicy{
			MaxFileSize:  cfg.Upload.MaxFileSize,
			AllowedTypes: cfg.Upload.AllowedTypes,
		},
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions, cfg.Session.CookieName, lgr)

	deps.AuthController = appControllers.NewAuthController(
		deps.Services.AuthService,
		appControllers.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		lgr,
	)
	deps.CategoryController = appControllers.NewCategoryController(deps.Services.CategoryService)
	deps.NoteController = appControllers.NewNoteController(deps.Services.NoteService, lgr)
	deps.RatingController = appControllers.NewRatingController(deps.Services.RatingService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidatorTagNames()

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxFileSize
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()))
	router.Use(appMiddleware.Recovery(lgr))

	appRoutes.SetupRouter(router,
		appRoutes.Controllers{
			Auth:     deps.AuthController,
			Category: deps.CategoryController,
			Note:     deps.NoteController,
			Rating:   deps.RatingController,
		},
		deps.AuthMiddleware,
		cfg.Upload.MaxFileSize+uploadBodySlack,
	)
	appRoutes.SetupFallback(router, cfg.Server.StaticDir)

	if cfg.Server.StaticDir != "" {
		lgr.Info().Str("path", cfg.Server.StaticDir).Msg("Serving client assets")
	}

	return router, nil
}
