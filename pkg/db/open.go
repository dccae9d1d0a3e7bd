package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connection errors.
var (
	ErrConnect   = errors.New("db: cannot connect")
	ErrUnhealthy = errors.New("db: healthcheck failed")
)

// Open creates a connection pool with retry logic for reliable startup.
// Uses linear backoff to handle transient network issues without overwhelming the database.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*sql.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMySQL
	}
	if log != nil {
		log.InfoContext(ctx, "create database connection pool...",
			slog.String("driver", driver),
			slog.String("addr", cfg.HostPort()),
			slog.String("database", cfg.Name),
		)
	}

	// Attempt 1 waits RetryInterval, attempt 2 waits 2x, attempt 3 waits 3x.
	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		conn, err := sql.Open(driver, dsn)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		configurePool(conn, cfg)

		// Verify connection with actual database ping to catch authentication and permission issues.
		if err := conn.PingContext(ctx); err != nil {
			lastErr = err
			_ = conn.Close()
			if i == attempts-1 {
				break
			}
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrConnect, ctx.Err())
			case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
			}
			continue
		}

		return conn, nil
	}

	return nil, errors.Join(ErrConnect, lastErr)
}

func configurePool(conn *sql.DB, cfg Config) {
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MinConns > 0 {
		conn.SetMaxIdleConns(cfg.MinConns)
	}
	if cfg.MaxConnIdleTime > 0 {
		conn.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}
	if cfg.MaxConnLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}
}

// Healthcheck returns a function that pings the database.
// Use with awesome.WithReadinessCheck.
func Healthcheck(conn *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := conn.PingContext(ctx); err != nil {
			return errors.Join(ErrUnhealthy, err)
		}
		return nil
	}
}
