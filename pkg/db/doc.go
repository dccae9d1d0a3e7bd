// Package db opens and maintains the relational database connection pool.
//
// It wraps database/sql with the MySQL driver ([github.com/go-sql-driver/mysql])
// as the default and the PostgreSQL driver ([github.com/jackc/pgx/v5/stdlib])
// as an alternative, and runs schema migrations with [github.com/pressly/goose/v3].
//
// # Configuration
//
// All settings are loaded from environment variables:
//
//	DB_DRIVER             - "mysql" (default) or "pgx"
//	DB_URL                - complete DSN, overrides the fields below
//	DB_HOST               - server host (default: localhost)
//	DB_PORT               - server port (default: 3306, or 5432 for pgx)
//	DB_USER, DB_PASSWORD  - credentials (default: www-data)
//	DB_NAME               - database name (default: awesome)
//	DB_CHARSET            - connection charset (default: utf8)
//	DB_MAX_OPEN_CONNS     - maximum open connections (default: 10)
//	DB_MIN_CONNS          - idle connections kept open (default: 1)
//	DB_RETRY_ATTEMPTS     - connection retry attempts (default: 3)
//	DB_RETRY_INTERVAL     - base retry interval (default: 5s)
//	DB_MIGRATIONS_TABLE   - goose version table (default: schema_migrations)
//
// # Usage
//
//	conn, err := db.Open(ctx, cfg.DB, log)
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	if err := db.Migrate(ctx, conn, cfg.DB, migrations.FS, log); err != nil {
//		return err
//	}
//
// [Healthcheck] returns a closure for readiness checks and [Shutdown] a hook
// for graceful shutdown. [WithTx] runs a function in a transaction and rolls
// back on error or panic.
//
// Failures wrap [ErrInvalidConfig], [ErrConnect], [ErrUnhealthy] or
// [ErrMigration] together with the driver error, so callers can match them
// with [errors.Is].
package db
