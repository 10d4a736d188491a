// Package database keeps the local ledger of pipeline runs inside a
// sqlite database.
package database

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/apex/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

// migrations contains the database schema migrations.
var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{{
		Id: "1_create_runs_table",
		Up: []string{`
			CREATE TABLE runs (
				id VARCHAR(36) PRIMARY KEY,
				pipeline VARCHAR(64) NOT NULL,
				table_id VARCHAR(128) NOT NULL,
				row_index INTEGER NOT NULL,
				source_file VARCHAR(260) NOT NULL,
				feature_table VARCHAR(260) NOT NULL,
				state VARCHAR(16) NOT NULL,
				failure VARCHAR(260) NOT NULL,
				start_time DATETIME NOT NULL,
				runtime REAL NOT NULL
			);`},
		Down: []string{"DROP TABLE runs;"},
	}},
}

// RunMigrations runs the database migrations.
func RunMigrations(db *sql.DB) error {
	n, err := migrate.Exec(db, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "running migrations")
	}
	log.Debugf("performed %d migrations", n)
	return nil
}

// Connect opens the sqlite database at the given path, creating the
// containing directory and the schema when missing.
func Connect(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
