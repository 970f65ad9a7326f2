package postgres

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// registers the pgx5:// scheme
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateURL rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme
// expected by golang-migrate.
func MigrateURL(dsn string) string {
	if rest, found := strings.CutPrefix(dsn, "postgres://"); found {
		return "pgx5://" + rest
	}
	if rest, found := strings.CutPrefix(dsn, "postgresql://"); found {
		return "pgx5://" + rest
	}
	return dsn
}

// RunMigrations applies every pending up migration over a dedicated connection.
func RunMigrations(dsn string) (err error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return oops.Code("MIGRATION_SOURCE_FAILED").Wrap(err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, MigrateURL(dsn))
	if err != nil {
		_ = src.Close() //nolint:errcheck
		return oops.Code("MIGRATION_INIT_FAILED").With("driver", "postgres").Wrap(err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
				err = oops.Code("MIGRATION_CLOSE_FAILED").Wrap(closeErr)
			}
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("MIGRATION_UP_FAILED").With("driver", "postgres").Wrap(err)
	}

	return nil
}
