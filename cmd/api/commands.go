package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/yigit/admissions/internal/app/migrations"
	"github.com/yigit/admissions/internal/bootstrap"
	"github.com/yigit/admissions/internal/config"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/server"
)

var errNeedsPostgres = errors.New("migrations require the postgres storage backend")

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cmd.String("config"))
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(ctx, cfg, lgr)
	if err != nil {
		return err
	}

	if err := server.NewServer(app).Run(ctx); err != nil {
		return err
	}
	lgr.Info().Msg("Application finished gracefully.")
	return nil
}

// withMigrator connects to the database and runs fn with a migrator
func withMigrator(ctx context.Context, cmd *cli.Command, fn func(*migrations.Migrator) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cmd.String("config"))
	if err != nil {
		return err
	}
	if cfg.Storage.Backend != config.StoragePostgres {
		return errNeedsPostgres
	}

	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	migrator, err := migrations.NewMigrator(database.Pool, lgr)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

func migrateUp(ctx context.Context, cmd *cli.Command) error {
	return withMigrator(ctx, cmd, func(m *migrations.Migrator) error {
		return m.Up(ctx)
	})
}

func migrateDown(ctx context.Context, cmd *cli.Command) error {
	return withMigrator(ctx, cmd, func(m *migrations.Migrator) error {
		return m.Down(ctx)
	})
}

func migrateStatus(ctx context.Context, cmd *cli.Command) error {
	return withMigrator(ctx, cmd, func(m *migrations.Migrator) error {
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tAPPLIED\tFILE")
		for _, s := range statuses {
			fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, s.Name)
		}
		return w.Flush()
	})
}

func seedData(ctx context.Context, cmd *cli.Command) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cmd.String("config"))
	if err != nil {
		return err
	}
	if cfg.Storage.Backend == config.StorageMemory {
		lgr.Warn().Msg("Seeding the memory backend has no lasting effect")
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer storage.Close()

	return bootstrap.SeedStorage(ctx, cfg, storage, auth.NewBcryptHasher(cfg.Auth.BcryptCost), lgr.With().Str("command", "seed").Logger())
}
