package orm

import (
	"context"
	"fmt"
	"strings"
)

// query collects the optional clauses of FindAll and FindNumber.
type query struct {
	where      string
	args       []any
	orderBy    string
	limit      int
	offset     int
	hasLimit   bool
	withOffset bool
	err        error
}

// QueryOption adds a clause to a query.
type QueryOption func(*query)

// Where filters rows. The clause uses ? placeholders bound to args.
//
//	models.Blogs.FindAll(ctx, db, orm.Where("user_id=?", uid), orm.OrderBy("created_at desc"))
func Where(clause string, args ...any) QueryOption {
	return func(q *query) {
		q.where = clause
		q.args = append(q.args, args...)
	}
}

// OrderBy sorts rows by the given expression.
func OrderBy(expr string) QueryOption {
	return func(q *query) {
		q.orderBy = expr
	}
}

// Limit returns at most n rows.
func Limit(n int) QueryOption {
	return func(q *query) {
		if n < 0 {
			q.err = fmt.Errorf("%w: %d", ErrInvalidLimit, n)
			return
		}
		q.limit, q.hasLimit, q.withOffset = n, true, false
	}
}

// LimitOffset skips offset rows and returns at most n rows.
func LimitOffset(offset, n int) QueryOption {
	return func(q *query) {
		if offset < 0 || n < 0 {
			q.err = fmt.Errorf("%w: (%d, %d)", ErrInvalidLimit, offset, n)
			return
		}
		q.offset, q.limit, q.hasLimit, q.withOffset = offset, n, true, true
	}
}

func buildQuery(opts []QueryOption) (*query, error) {
	q := &query{}
	for _, opt := range opts {
		opt(q)
	}
	return q, q.err
}

// render appends the clauses to base and returns the statement with its args.
func (q *query) render(d Dialect, base string, withOrder bool) (string, []any) {
	sql := []string{base}
	args := append([]any(nil), q.args...)
	if q.where != "" {
		sql = append(sql, "where", q.where)
	}
	if withOrder && q.orderBy != "" {
		sql = append(sql, "order by", q.orderBy)
	}
	if withOrder && q.hasLimit {
		clause, limitArgs := d.limit(q.offset, q.limit, q.withOffset)
		sql = append(sql, clause)
		args = append(args, limitArgs...)
	}
	return d.Rebind(strings.Join(sql, " ")), args
}

// FindAll returns the instances matching the options.
func (m *Model) FindAll(ctx context.Context, db *DB, opts ...QueryOption) ([]*Instance, error) {
	q, err := buildQuery(opts)
	if err != nil {
		return nil, err
	}
	sql, args := q.render(m.dialect, m.selectSQL, true)

	rows, err := db.Select(ctx, sql, args, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*Instance, 0, len(rows))
	for _, row := range rows {
		out = append(out, m.New(m.fromRow(row)))
	}
	return out, nil
}

// FindNumber returns a single aggregate, e.g. FindNumber(ctx, db, "count(id)").
// Only Where applies. Returns nil when the query yields no rows.
func (m *Model) FindNumber(ctx context.Context, db *DB, selectExpr string, opts ...QueryOption) (any, error) {
	q, err := buildQuery(opts)
	if err != nil {
		return nil, err
	}
	base := fmt.Sprintf("select %s _num_ from %s", selectExpr, m.dialect.Quote(m.table))
	sql, args := q.render(m.dialect, base, false)

	rows, err := db.Select(ctx, sql, args, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0]["_num_"], nil
}

// Count returns count(pk) for the rows matching the options.
func (m *Model) Count(ctx context.Context, db *DB, opts ...QueryOption) (int, error) {
	n, err := m.FindNumber(ctx, db, fmt.Sprintf("count(%s)", m.dialect.Quote(m.primaryKey.Column)), opts...)
	if err != nil {
		return 0, err
	}
	switch v := n.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case string:
		var out int
		_, err := fmt.Sscan(v, &out)
		return out, err
	}
	return 0, nil
}

// Find returns the instance with the given primary key, or ErrNotFound.
func (m *Model) Find(ctx context.Context, db *DB, pk any) (*Instance, error) {
	sql := m.dialect.Rebind(fmt.Sprintf("%s where %s=?", m.selectSQL, m.dialect.Quote(m.primaryKey.Column)))

	rows, err := db.Select(ctx, sql, []any{pk}, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return m.New(m.fromRow(rows[0])), nil
}
