package main

import (
	"errors"
	"fmt"
	"os"

	"go-cpq/internal/app"
	"go-cpq/internal/config"
	"go-cpq/internal/shared/connection"
	"go-cpq/internal/shared/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "migrate",
		Usage: "apply the embedded database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "optional config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *migrate.Migrate, log *zap.Logger) error {
						if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
							return err
						}
						log.Info("migrations applied")
						return nil
					})
				},
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back, 0 rolls back all"},
				},
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *migrate.Migrate, log *zap.Logger) error {
						steps := c.Int("steps")
						var err error
						if steps <= 0 {
							err = m.Down()
						} else {
							err = m.Steps(-steps)
						}
						if err != nil && !errors.Is(err, migrate.ErrNoChange) {
							return err
						}
						log.Info("migrations rolled back", zap.Int("steps", steps))
						return nil
					})
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *migrate.Migrate, _ *zap.Logger) error {
						version, dirty, err := m.Version()
						if errors.Is(err, migrate.ErrNilVersion) {
							fmt.Fprintln(c.App.Writer, "no migrations applied")
							return nil
						}
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "version %d (dirty=%t)\n", version, dirty)
						return nil
					})
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withMigrator(c *cli.Context, fn func(m *migrate.Migrate, log *zap.Logger) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	// Closing the migrator closes sqlDB as well.
	m, err := database.NewMigrator(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer m.Close()

	return fn(m, logger.Named("migrate"))
}
