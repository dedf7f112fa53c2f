package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appMigrations "github.com/yigit/admissions/internal/app/migrations"
	"github.com/yigit/admissions/internal/app/models"
	appRepos "github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/app/repositories/memory"
	appServices "github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/config"
	"github.com/yigit/admissions/internal/db"
)

// Storage bundles the stores of one backend
type Storage struct {
	Backend          string
	Users            appServices.UserStore
	Courses          appServices.CourseStore
	CompletedCourses appServices.CompletedCourseStore
	StudentProfiles  appServices.RecordStore[*models.StudentProfile]
	SchoolRecords    appServices.RecordStore[*models.SchoolRecord]
	CollegeRecords   appServices.RecordStore[*models.CollegeRecord]
	ExamRecords      appServices.RecordStore[*models.ExamRecord]

	// Pool is nil for the memory backend
	Pool *pgxpool.Pool
}

// NewMemoryStorage returns an empty in-process backend
func NewMemoryStorage() *Storage {
	store := memory.New()
	return &Storage{
		Backend:          config.StorageMemory,
		Users:            store.Users,
		Courses:          store.Courses,
		CompletedCourses: store.CompletedCourses,
		StudentProfiles:  store.StudentProfiles,
		SchoolRecords:    store.SchoolRecords,
		CollegeRecords:   store.CollegeRecords,
		ExamRecords:      store.ExamRecords,
	}
}

// NewPostgresStorage builds the repositories on pool
func NewPostgresStorage(pool *pgxpool.Pool) *Storage {
	repos := appRepos.NewRepositories(pool)
	return &Storage{
		Backend:          config.StoragePostgres,
		Users:            repos.UserRepository,
		Courses:          repos.CourseRepository,
		CompletedCourses: repos.CompletedCourseRepository,
		StudentProfiles:  repos.StudentProfileRepository,
		SchoolRecords:    repos.SchoolRecordRepository,
		CollegeRecords:   repos.CollegeRecordRepository,
		ExamRecords:      repos.ExamRecordRepository,
		Pool:             pool,
	}
}

// Ping checks the backend connection. The memory backend is always up.
func (s *Storage) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return nil
	}
	return s.Pool.Ping(ctx)
}

// Close releases the backend connection
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// SetupDatabase establishes the database connection and runs migrations
// unless they are disabled.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.SkipMigrations {
		lgr.Warn().Msg("Skipping database migrations")
		return database.Pool, nil
	}

	migrator, err := appMigrations.NewMigrator(database.Pool, lgr)
	if err != nil {
		database.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Up(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	return database.Pool, nil
}

// OpenStorage opens the configured backend
func OpenStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		lgr.Warn().Msg("Using in-memory storage, data is lost on exit")
		return NewMemoryStorage(), nil
	case config.StoragePostgres:
		pool, err := SetupDatabase(ctx, cfg, lgr)
		if err != nil {
			return nil, err
		}
		return NewPostgresStorage(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
