package main

import (
	"context"

	"go.uber.org/zap"

	"taskapp/internal/adapter/database/postgres"
	pgrepository "taskapp/internal/adapter/database/postgres/repository"
	"taskapp/internal/adapter/database/sqlite"
	sqliterepository "taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/config"
	"taskapp/internal/core/port"
)

// openStore connects the configured database and applies migrations when
// enabled. The returned func releases the connection.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (port.UnitOfWorkProvider, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, postgres.Options{
			DSN:            cfg.DSN,
			ConnectRetries: cfg.ConnectRetries,
		})
		if err != nil {
			return nil, nil, err
		}

		if cfg.Migrate {
			if err := postgres.RunMigrations(cfg.DSN); err != nil {
				db.Close()
				return nil, nil, err
			}
			logger.Info("Database migrated", zap.String("driver", cfg.Driver))
		}

		return pgrepository.NewUnitOfWorkProvider(db), db.Close, nil
	default:
		db, err := sqlite.NewDB(sqlite.Options{DSN: cfg.DSN, SQLLog: cfg.SQLLog})
		if err != nil {
			return nil, nil, err
		}

		if cfg.Migrate {
			if err := sqlite.RunMigrations(db.DB); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			logger.Info("Database migrated", zap.String("driver", cfg.Driver))
		}

		return sqliterepository.NewUnitOfWorkProvider(db), func() { _ = db.Close() }, nil
	}
}
