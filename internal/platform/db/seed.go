package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/auth"
	"staffhub/internal/platform/config"
)

// Seed ensures the bootstrap HR account exists. It is idempotent and a no-op
// when SEED_HR_EMAIL is unset.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedHREmail == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", cfg.SeedHREmail).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedHRPassword)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1,$2,$3)
    RETURNING id
  `, cfg.SeedHREmail, hash, auth.RoleHR).Scan(&userID); err != nil {
		return err
	}

	var employeeID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO employees (user_id, name, department, designation, join_date, office_start)
    VALUES ($1,$2,'Human Resources','HR Manager',$3,$4)
    RETURNING id
  `, userID, cfg.SeedHRName, time.Now().UTC(), cfg.OfficeStart).Scan(&employeeID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "INSERT INTO leave_balance (employee_id) VALUES ($1)", employeeID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
