package orm

import (
	"strconv"
	"strings"
)

// Dialect controls identifier quoting, placeholders and limit syntax.
type Dialect struct {
	name     string
	quote    string
	numbered bool
}

var (
	// MySQL quotes identifiers with backticks and uses ? placeholders.
	// SQLite accepts the same syntax.
	MySQL = Dialect{name: "mysql", quote: "`"}

	// Postgres quotes identifiers with double quotes and uses $n placeholders.
	Postgres = Dialect{name: "postgres", quote: `"`, numbered: true}
)

// Name returns the dialect name.
func (d Dialect) Name() string { return d.name }

// Quote quotes an identifier.
func (d Dialect) Quote(ident string) string {
	return d.quote + strings.ReplaceAll(ident, d.quote, d.quote+d.quote) + d.quote
}

// Rebind converts ? placeholders to the dialect's style.
// Question marks inside quoted strings and identifiers are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.numbered || !strings.Contains(query, "?") {
		return query
	}

	var (
		b     strings.Builder
		n     int
		quote rune
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// limit renders a limit clause with its arguments.
func (d Dialect) limit(offset, n int, withOffset bool) (string, []any) {
	switch {
	case !withOffset:
		return "limit ?", []any{n}
	case d.numbered:
		return "limit ? offset ?", []any{n, offset}
	default:
		return "limit ?, ?", []any{offset, n}
	}
}
