package orm

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/awesome/pkg/db"
)

// Querier runs statements. *sql.DB, *sql.Tx and *sql.Conn implement it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DB executes statements against a Querier and returns rows as records.
type DB struct {
	q      Querier
	logger *slog.Logger
}

// DBOption configures a DB.
type DBOption func(*DB)

// WithLogger sets the statement logger.
func WithLogger(l *slog.Logger) DBOption {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDB wraps a Querier.
func NewDB(q Querier, opts ...DBOption) *DB {
	d := &DB{
		q:      q,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Querier returns the wrapped Querier.
func (d *DB) Querier() Querier { return d.q }

// Select runs a query and returns its rows keyed by column name.
// size > 0 caps the number of rows fetched.
func (d *DB) Select(ctx context.Context, query string, args []any, size int) ([]Record, error) {
	d.logger.InfoContext(ctx, "SQL: "+query, slog.Any("args", args))

	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	var out []Record
	for rows.Next() {
		if size > 0 && len(out) >= size {
			break
		}
		vals := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Join(ErrQuery, err)
		}
		rec := make(Record, len(columns))
		for i, col := range columns {
			rec[col] = normalize(vals[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	d.logger.InfoContext(ctx, "rows returned", slog.Int("rows", len(out)))
	return out, nil
}

// Execute runs a statement and returns the number of affected rows.
func (d *DB) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	d.logger.InfoContext(ctx, "SQL: "+query, slog.Any("args", args))

	res, err := d.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Join(ErrExec, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExec, err)
	}
	return affected, nil
}

// Tx runs fn in a transaction. The transaction commits when fn returns nil
// and rolls back otherwise. Inside an existing transaction fn joins it.
func (d *DB) Tx(ctx context.Context, fn func(tx *DB) error) error {
	switch q := d.q.(type) {
	case *sql.Tx:
		return fn(d)
	case db.TxBeginner:
		return db.WithTx(ctx, q, func(tx *sql.Tx) error {
			return fn(&DB{q: tx, logger: d.logger})
		})
	}
	return ErrTxNotSupported
}

// normalize converts driver byte slices to strings.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
