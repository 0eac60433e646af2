// Package dbtest gives store tests a migrated, empty Postgres database. Tests
// that call Open are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"recognition/internal/platform/db"
)

// lockKey serialises DB-backed tests across packages, which go test runs in
// parallel against the same database.
const lockKey = 727001

// sessionZone is far from UTC so that date logic relying on the session time
// zone shows up in tests.
const sessionZone = "Pacific/Kiritimati"

const tables = "audit_events, job_runs, reviews, goal_journals, goals, employees, managers, users"

func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()
	url := lookupURL()
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		t.Fatalf("parse TEST_DATABASE_URL: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["timezone"] = sessionZone
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	lock, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		t.Fatalf("acquire lock connection: %v", err)
	}
	if _, err := lock.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		lock.Release()
		pool.Close()
		t.Fatalf("advisory lock: %v", err)
	}
	t.Cleanup(func() {
		_, _ = lock.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		lock.Release()
		pool.Close()
	})

	if err := db.Migrate(ctx, pool, migrationsDir()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE "+tables+" RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func lookupURL() string {
	return strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

// User inserts a login identity and returns its id.
func User(t testing.TB, pool *pgxpool.Pool, username string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
    INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, 'x')
    RETURNING id
  `, username, email(username)).Scan(&id)
	if err != nil {
		t.Fatalf("insert user %s: %v", username, err)
	}
	return id
}

// Manager inserts a manager profile linked to userID and returns its id.
func Manager(t testing.TB, pool *pgxpool.Pool, userID, lastName string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
    INSERT INTO managers (user_id, first_name, last_name, email, department)
    VALUES ($1, 'Test', $2, $3, 'Engineering')
    RETURNING id
  `, userID, lastName, email(lastName)).Scan(&id)
	if err != nil {
		t.Fatalf("insert manager %s: %v", lastName, err)
	}
	return id
}

// Employee inserts an employee profile linked to userID and reporting to
// managerID and returns its id.
func Employee(t testing.TB, pool *pgxpool.Pool, userID, managerID, lastName string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
    INSERT INTO employees (user_id, manager_id, first_name, last_name, email, position)
    VALUES ($1, $2, 'Test', $3, $4, 'Engineer')
    RETURNING id
  `, userID, managerID, lastName, email(lastName)).Scan(&id)
	if err != nil {
		t.Fatalf("insert employee %s: %v", lastName, err)
	}
	return id
}

func email(name string) string {
	return strings.ToLower(name) + "@example.com"
}
