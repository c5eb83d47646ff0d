package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"jobs", "users", "applications"} {
		var n int
		if err := db.GetContext(ctx, &n, db.Rebind("SELECT COUNT(*) FROM "+table)); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
	}
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second migrate should be a no-op: %v", err)
	}
}

func TestSQLiteUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	insert := `INSERT INTO users (id, first_name, last_name, email, role, created_at, updated_at)
		VALUES (?, 'a', 'b', 'same@x.io', 'student', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	if _, err := db.ExecContext(ctx, insert, "u1"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = db.ExecContext(ctx, insert, "u2")
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestIsUniqueViolationPostgres(t *testing.T) {
	if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatal("lib/pq unique violation not detected")
	}
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("pgx unique violation not detected")
	}
	if IsUniqueViolation(errors.New("other")) || IsUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("false positive")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", ""); err == nil {
		t.Fatal("expected error")
	}
}
