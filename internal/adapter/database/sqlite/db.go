package sqlite

import (
	"database/sql"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/samber/oops"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

type Options struct {
	DSN string
	// SQLLog logs every statement through zerolog.
	SQLLog bool
}

// NewDB opens the SQLite database described by opts. Migrations are not run.
func NewDB(opts Options) (*DB, error) {
	dsn := immediateTxLock(opts.DSN)

	sqlDB, err := otelsql.Open("sqlite3", dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("taskapp"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)
	if err != nil {
		return nil, oops.Code("DB_OPEN_FAILED").With("driver", "sqlite").Wrap(err)
	}

	db := sqlDB
	if opts.SQLLog {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Str("component", "sql").Logger()

		db = sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger),
			sqldblogger.WithSQLQueryAsMessage(true),
			sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
		)
		sqlDB.Close() //nolint:errcheck
	}

	if isMemory(dsn) {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(16)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck
		return nil, oops.Code("DB_PING_FAILED").With("driver", "sqlite").Wrap(err)
	}

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           db,
		QueryBuilder: &queryBuilder,
	}, nil
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// immediateTxLock makes file databases take the write lock at BEGIN so
// concurrent writers queue on the busy timeout instead of failing on upgrade.
// An explicit _txlock in the DSN is kept.
func immediateTxLock(dsn string) string {
	if isMemory(dsn) || strings.Contains(dsn, "_txlock=") {
		return dsn
	}

	if strings.Contains(dsn, "?") {
		return dsn + "&_txlock=immediate"
	}
	return dsn + "?_txlock=immediate"
}
