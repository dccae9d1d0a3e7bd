package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// ErrMigration wraps every goose failure.
var ErrMigration = errors.New("db: migration failed")

// Migrate applies all pending migrations found at the root of migrations.
func Migrate(ctx context.Context, conn *sql.DB, cfg Config, migrations fs.FS, log *slog.Logger) error {
	return migrate(ctx, conn, cfg, migrations, log, "up", goose.UpContext)
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, conn *sql.DB, cfg Config, migrations fs.FS, log *slog.Logger) error {
	return migrate(ctx, conn, cfg, migrations, log, "down", goose.DownContext)
}

func migrate(
	ctx context.Context, conn *sql.DB, cfg Config, migrations fs.FS, log *slog.Logger,
	direction string, run func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error,
) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(cfg.MigrationsTable)

	if err := goose.SetDialect(cfg.Dialect()); err != nil {
		return fmt.Errorf("%w: dialect %s: %w", ErrMigration, cfg.Dialect(), err)
	}
	if err := run(ctx, conn, "."); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMigration, direction, err)
	}
	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	// goose returns the error as well; exiting here would skip shutdown hooks.
	g.log.Error(fmt.Sprintf(format, args...))
}
