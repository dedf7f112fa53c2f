package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/admissions/internal/app/auth"
	appControllers "github.com/yigit/admissions/internal/app/controllers"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	appRoutes "github.com/yigit/admissions/internal/app/routes"
	appServices "github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/config"
	appMiddleware "github.com/yigit/admissions/internal/middleware"
	pkgAuth "github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/cache"
	"github.com/yigit/admissions/internal/pkg/logger"
	"github.com/yigit/admissions/internal/pkg/metrics"
	"github.com/yigit/admissions/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage        *Storage
	Metrics        *metrics.Metrics // nil when metrics are disabled
	IdentityCache  cache.IdentityCache
	Hasher         pkgAuth.PasswordHasher
	AuthService    *appServices.AuthService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Format: cfg.Logging.Format,
	})
	lgr.Info().
		Str("storage", cfg.Storage.Backend).
		Str("cache", cfg.Cache.Backend).
		Str("mode", cfg.Server.Mode).
		Msg("Configuration loaded")
	return cfg, lgr, nil
}

// SetupCache creates the configured identity cache
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (cache.IdentityCache, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.Noop{}, nil
	case config.CacheMemory:
		return cache.NewLRUIdentityCache(cfg.Cache.Size, cfg.Cache.TTL), nil
	case config.CacheRedis:
		c, err := cache.NewRedisIdentityCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL, lgr)
		if err != nil {
			return nil, fmt.Errorf("failed to setup identity cache: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// SeedStorage applies the configured seed file
func SeedStorage(ctx context.Context, cfg *config.Config, storage *Storage, hasher pkgAuth.PasswordHasher, lgr zerolog.Logger) error {
	f, err := seed.Load(cfg.Seed.Path, lgr)
	if err != nil {
		return err
	}
	_, err = seed.NewSeeder(storage.Users, storage.Courses, hasher, lgr).Run(ctx, f)
	return err
}

// BuildDependencies initializes services and controllers on top of storage
func BuildDependencies(cfg *config.Config, storage *Storage, identityCache cache.IdentityCache, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Storage:       storage,
		IdentityCache: identityCache,
		Logger:        lgr,
	}

	if !cfg.Metrics.Disabled {
		deps.Metrics = metrics.New()
		if storage.Pool != nil {
			pool := storage.Pool
			deps.Metrics.RegisterPoolGauge("acquired_conns", "Connections currently in use",
				func() float64 { return float64(pool.Stat().AcquiredConns()) })
			deps.Metrics.RegisterPoolGauge("total_conns", "Connections currently open",
				func() float64 { return float64(pool.Stat().TotalConns()) })
		}
	}
	m := deps.Metrics

	deps.Hasher = pkgAuth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := pkgAuth.NewTokenService(pkgAuth.TokenConfig{
		SecretKey: cfg.Auth.TokenSecret,
		TTL:       cfg.Auth.TokenTTL,
		Issuer:    cfg.Auth.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		storage.Users,
		deps.Hasher,
		tokens,
		identityCache,
		m,
		appServices.AuthOptions{AllowAdminRegistration: !cfg.Auth.DisableAdminRegistration},
		lgr.With().Str("component", "auth").Logger(),
	)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService, cfg.Auth.TokenHeader)

	guard := appAuth.NewAccessGuard(storage.Users)
	recordLogger := lgr.With().Str("component", "records").Logger()

	students := appServices.NewRecordService(models.KindStudentProfile, storage.StudentProfiles, m, recordLogger)
	schools := appServices.NewRecordService(models.KindSchoolRecord, storage.SchoolRecords, m, recordLogger)
	colleges := appServices.NewRecordService(models.KindCollegeRecord, storage.CollegeRecords, m, recordLogger)
	exams := appServices.NewRecordService(models.KindExamRecord, storage.ExamRecords, m, recordLogger)
	courses := appServices.NewCourseService(storage.Courses, m, lgr.With().Str("component", "courses").Logger())
	completed := appServices.NewCompletedCourseService(storage.CompletedCourses, storage.Courses, m, recordLogger)

	// self and admin mirror endpoints share services and differ in mode only
	resources := func(mode appAuth.AccessMode) []appRoutes.Resource {
		return []appRoutes.Resource{
			{Path: "/student", Handlers: appControllers.NewRecordController(students, guard, mode, (*dto.StudentRequest).ToModel, dto.FromStudentProfile)},
			{Path: "/school", Handlers: appControllers.NewRecordController(schools, guard, mode, (*dto.SchoolRequest).ToModel, dto.FromSchoolRecord)},
			{Path: "/college", Handlers: appControllers.NewRecordController(colleges, guard, mode, (*dto.CollegeRequest).ToModel, dto.FromCollegeRecord)},
			{Path: "/jee", Handlers: appControllers.NewRecordController(exams, guard, mode, (*dto.ExamRequest).ToModel, dto.FromExamRecord)},
			{Path: "/completedcourse", Handlers: appControllers.NewCompletedCourseController(completed, guard, mode)},
		}
	}

	deps.Controllers = appRoutes.Controllers{
		Auth:   appControllers.NewAuthController(deps.AuthService, lgr.With().Str("component", "auth").Logger()),
		Health: appControllers.NewHealthController(storage.Backend, storage.Ping),
		Course: appControllers.NewCourseController(courses),
		Self:   resources(appAuth.AccessSelf),
		Admin:  resources(appAuth.AccessAdminMirror),
	}
	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case strings.EqualFold(cfg.Server.Mode, "test"):
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	appMiddleware.RegisterValidation()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))
	if deps.Metrics != nil {
		router.Use(appMiddleware.Metrics(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}

// App is a fully wired application
type App struct {
	Config *config.Config
	Deps   *Dependencies
	Router *gin.Engine
	Logger zerolog.Logger
}

// NewApp opens storage and the identity cache, seeds when enabled and
// builds the router.
func NewApp(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*App, error) {
	storage, err := OpenStorage(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup storage: %w", err)
	}

	identityCache, err := SetupCache(ctx, cfg, lgr)
	if err != nil {
		storage.Close()
		return nil, err
	}

	deps := BuildDependencies(cfg, storage, identityCache, lgr)

	if !cfg.Seed.SkipOnStart {
		if err := SeedStorage(ctx, cfg, storage, deps.Hasher, lgr); err != nil {
			// partial seeds are not fatal; the entries that failed are logged
			lgr.Error().Err(err).Msg("Failed to seed storage, proceeding anyway...")
		}
	}

	return &App{
		Config: cfg,
		Deps:   deps,
		Router: SetupRouter(cfg, deps, lgr),
		Logger: lgr,
	}, nil
}

// Close releases the cache connection and the storage backend
func (a *App) Close() error {
	var err error
	if closer, ok := a.Deps.IdentityCache.(interface{ Close() error }); ok {
		err = closer.Close()
	}
	a.Deps.Storage.Close()
	return err
}
