// Command db manages the Belga Hub PostgreSQL schema: migrations,
// rollbacks, and migration scaffolding.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/migrations"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var errNameRequired = errors.New("NAME argument required")

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	db, migrator, logger, err := setupMigrator()
	if err != nil {
		return fmt.Errorf("failed to setup migrator: %w", err)
	}
	defer db.Close()

	app := &cli.Command{
		Name:  "belgahub-db",
		Usage: "Belga Hub schema management",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the migration bookkeeping tables",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return migrator.Init(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply pending migrations",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return withLock(ctx, migrator, func() error {
						group, err := migrator.Migrate(ctx)
						if err != nil {
							return err
						}

						if group.IsZero() {
							logger.Info("Schema is up to date")
							return nil
						}

						logger.Info("Applied migrations",
							zap.String("group", group.String()),
						)

						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "Revert the last migration group",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return withLock(ctx, migrator, func() error {
						group, err := migrator.Rollback(ctx)
						if err != nil {
							return err
						}

						if group.IsZero() {
							logger.Info("Nothing to roll back")
							return nil
						}

						logger.Info("Rolled back migrations",
							zap.String("group", group.String()),
						)

						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show applied and pending migrations",
				Action: func(ctx context.Context, _ *cli.Command) error {
					ms, err := migrator.MigrationsWithStatus(ctx)
					if err != nil {
						return err
					}

					logger.Info("Migration status",
						zap.String("migrations", ms.String()),
						zap.String("unapplied", ms.Unapplied().String()),
						zap.String("last_group", ms.LastGroup().String()),
					)

					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "Scaffold a new Go migration file",
				ArgsUsage: "NAME",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return errNameRequired
					}

					mf, err := migrator.CreateGoMigration(ctx, c.Args().First())
					if err != nil {
						return err
					}

					logger.Info("Created migration",
						zap.String("name", mf.Name),
						zap.String("path", mf.Path),
					)

					return nil
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// withLock runs fn while holding the migration lock so concurrent
// deploys never interleave schema changes.
func withLock(ctx context.Context, migrator *migrate.Migrator, fn func() error) error {
	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer migrator.Unlock(ctx) //nolint:errcheck // migration lock cleanup

	return fn()
}

// setupMigrator connects to the hub database and builds the migrator
// over the registered migrations.
func setupMigrator() (database.Client, *migrate.Migrator, *zap.Logger, error) {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewConnection(context.Background(), &cfg.Common.PostgreSQL, logger, false)
	if err != nil {
		return nil, nil, logger, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrate.NewMigrator(db.DB(), migrations.Migrations)

	return db, migrator, logger, nil
}
