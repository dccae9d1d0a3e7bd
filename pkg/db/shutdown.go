package db

import (
	"context"
	"database/sql"
)

// Shutdown returns a function that closes the connection pool.
// Use with awesome.ShutdownHook.
//
// Example:
//
//	app.Run(":9000", awesome.ShutdownHook(db.Shutdown(conn)))
func Shutdown(conn *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return conn.Close()
	}
}
