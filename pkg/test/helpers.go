package test

import (
	"log"
	"strings"
	"testing"

	"taskapp/internal/adapter/database/sqlite"
)

const memoryDSN = "file::memory:?_busy_timeout=5000"

// InitTestDB opens a private in-memory SQLite database with all migrations applied.
func InitTestDB() *sqlite.DB {
	db, err := sqlite.NewDB(sqlite.Options{DSN: memoryDSN})
	if err != nil {
		log.Fatal(err)
	}

	if err := sqlite.RunMigrations(db.DB); err != nil {
		log.Fatal(err)
	}

	return db
}

// CleanDB deletes every row from every application table.
func CleanDB(t *testing.T, db *sqlite.DB) {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT IN ('sqlite_sequence', 'schema_migrations')")
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	var tables []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			t.Fatalf("Failed to scan table name: %v", err)
		}
		tables = append(tables, strings.TrimSpace(table))
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Error iterating over rows: %v", err)
	}
	rows.Close() //nolint:errcheck

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to delete from table %s: %v", table, err)
		}
	}
}

func TeardownTestDB(t *testing.T, db *sqlite.DB) {
	t.Helper()

	if db != nil {
		CleanDB(t, db)
		db.Close() //nolint:errcheck
	}
}
