// Package database opens the SQL backends and creates their schema
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Abraxas-365/shiftboard/pkg/logx"
)

// Driver names accepted by Open
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to the database and applies the schema
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres, DriverPgx, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logx.Infof("Connected to %s database", driver)
	return db, nil
}

// Migrate creates the tables when missing
func Migrate(ctx context.Context, db *sqlx.DB) error {
	ts := "TIMESTAMPTZ"
	if db.DriverName() == DriverSQLite {
		ts = "TIMESTAMP"
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, strings.ReplaceAll(stmt, "{{ts}}", ts)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		employer TEXT NOT NULL,
		location TEXT NOT NULL,
		category TEXT NOT NULL,
		type TEXT NOT NULL,
		salary_min INTEGER NOT NULL DEFAULT 0,
		salary_max INTEGER NOT NULL DEFAULT 0,
		salary_currency TEXT NOT NULL DEFAULT '',
		salary_period TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		deadline {{ts}} NOT NULL,
		status TEXT NOT NULL,
		application_count INTEGER NOT NULL DEFAULT 0,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		resume_url TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		applicant_id TEXT NOT NULL,
		status TEXT NOT NULL,
		note TEXT,
		cover_letter TEXT NOT NULL DEFAULT '',
		job_title TEXT NOT NULL DEFAULT '',
		job_category TEXT NOT NULL DEFAULT '',
		applicant_name TEXT NOT NULL DEFAULT '',
		applicant_email TEXT NOT NULL DEFAULT '',
		submitted_at {{ts}} NOT NULL,
		updated_at {{ts}},
		UNIQUE (job_id, applicant_id)
	)`,
}

// IsUniqueViolation reports whether err is a unique constraint failure on any
// supported driver
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
