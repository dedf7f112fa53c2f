package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/yigit/admissions/internal/pkg/logger"
)

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Load configuration from `FILE`; environment variables override it",
		Value:   "configs/config.yaml",
		Sources: cli.EnvVars("CONFIG_PATH"),
	}

	cmd := &cli.Command{
		Name:   "admissions",
		Usage:  "Student admissions API",
		Flags:  []cli.Flag{configFlag},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Manage the database schema",
				Commands: []*cli.Command{
					{Name: "up", Usage: "Apply all pending migrations", Action: migrateUp},
					{Name: "down", Usage: "Roll back the most recent migration", Action: migrateDown},
					{Name: "status", Usage: "List migrations and whether they are applied", Action: migrateStatus},
				},
			},
			{
				Name:   "seed",
				Usage:  "Provision roles, catalog courses and admin accounts from the seed file",
				Action: seedData,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
