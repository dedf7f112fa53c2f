package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var embedded embed.FS

// Status describes one migration as reported by the status command
type Status struct {
	Version int64
	Name    string
	Applied bool
}

// Migrator applies the embedded schema migrations with goose
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
	logger   zerolog.Logger
}

// NewMigrator wraps pool in a database/sql handle for goose
func NewMigrator(pool *pgxpool.Pool, logger zerolog.Logger) (*Migrator, error) {
	migrationsFS, err := fs.Sub(embedded, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrationsFS)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{
		db:       db,
		provider: provider,
		logger:   logger.With().Str("component", "migrator").Logger(),
	}, nil
}

// Up applies all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		m.logger.Info().
			Int64("version", r.Source.Version).
			Str("file", r.Source.Path).
			Dur("duration", r.Duration).
			Msg("Migration applied")
	}
	if len(results) == 0 {
		m.logger.Info().Msg("Schema is up to date")
	}
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	m.logger.Info().Int64("version", result.Source.Version).Str("file", result.Source.Path).Msg("Migration rolled back")
	return nil
}

// Status lists every known migration and whether it is applied
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Status{
			Version: s.Source.Version,
			Name:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Close releases the database/sql handle. The underlying pool stays open.
func (m *Migrator) Close() error {
	return m.db.Close()
}
