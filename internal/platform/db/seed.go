package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recognition/internal/domain/auth"
	"recognition/internal/platform/config"
)

// Seed creates a demo manager and one employee reporting to them. Accounts
// whose password is not configured are skipped. Reruns are no-ops.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	managerUserID, err := ensureUser(ctx, pool, cfg.SeedManagerUsername, cfg.SeedManagerPassword)
	if err != nil {
		return err
	}
	if managerUserID == "" {
		return nil
	}
	managerID, err := ensureManager(ctx, pool, managerUserID, cfg.SeedManagerUsername)
	if err != nil {
		return err
	}

	employeeUserID, err := ensureUser(ctx, pool, cfg.SeedEmployeeUsername, cfg.SeedEmployeePassword)
	if err != nil || employeeUserID == "" {
		return err
	}
	return ensureEmployee(ctx, pool, employeeUserID, managerID, cfg.SeedEmployeeUsername)
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", nil
	}
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE lower(username) = lower($1)", username).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id
  `, username, username+"@example.com", hash).Scan(&id)
	return id, err
}

func ensureManager(ctx context.Context, pool *pgxpool.Pool, userID, username string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM managers WHERE user_id = $1", userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO managers (user_id, first_name, last_name, email, department)
    VALUES ($1, $2, 'Manager', $3, 'Engineering')
    RETURNING id
  `, userID, displayName(username), username+"@example.com").Scan(&id)
	return id, err
}

func ensureEmployee(ctx context.Context, pool *pgxpool.Pool, userID, managerID, username string) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO employees (user_id, manager_id, first_name, last_name, email, position)
    VALUES ($1, $2, $3, 'Employee', $4, 'Engineer')
    ON CONFLICT (user_id) DO NOTHING
  `, userID, managerID, displayName(username), username+"@example.com")
	return err
}

func displayName(username string) string {
	if username == "" {
		return username
	}
	return strings.ToUpper(username[:1]) + username[1:]
}
