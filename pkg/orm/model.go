package orm

import (
	"fmt"
	"strings"
)

// Model maps a table to a set of fields and holds the statements derived
// from them. It is immutable after Define.
type Model struct {
	dialect    Dialect
	table      string
	primaryKey Field
	fields     []Field
	byName     map[string]Field
	byColumn   map[string]string

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// Define declares a MySQL model for table. Exactly one field must be the
// primary key and field names must be unique.
//
//	var Users = orm.MustDefine("users",
//	    orm.String("id", orm.PrimaryKey(), orm.Default(id.Next), orm.DDL("varchar(50)")),
//	    orm.String("email", orm.DDL("varchar(50)")),
//	    orm.Boolean("admin"),
//	)
func Define(table string, fields ...Field) (*Model, error) {
	return DefineWith(MySQL, table, fields...)
}

// DefineWith is like Define with an explicit SQL dialect.
func DefineWith(d Dialect, table string, fields ...Field) (*Model, error) {
	if strings.TrimSpace(table) == "" {
		return nil, ErrEmptyTable
	}

	m := &Model{
		dialect:  d,
		table:    table,
		byName:   make(map[string]Field, len(fields)),
		byColumn: make(map[string]string, len(fields)),
	}

	var pkFound bool
	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		if f.Column == "" {
			f.Column = f.Name
		}
		if _, ok := m.byName[f.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		if _, ok := m.byColumn[f.Column]; ok {
			return nil, fmt.Errorf("%w: column %s", ErrDuplicateField, f.Column)
		}
		m.byName[f.Name] = f
		m.byColumn[f.Column] = f.Name

		if f.PrimaryKey {
			if pkFound {
				return nil, fmt.Errorf("%w: %s", ErrDuplicatePrimaryKey, f.Name)
			}
			pkFound = true
			m.primaryKey = f
			continue
		}
		m.fields = append(m.fields, f)
	}
	if !pkFound {
		return nil, ErrPrimaryKeyNotFound
	}

	m.buildStatements()
	return m, nil
}

// MustDefine is like Define but panics on an invalid definition.
func MustDefine(table string, fields ...Field) *Model {
	m, err := Define(table, fields...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) buildStatements() {
	q := m.dialect.Quote
	table := q(m.table)
	pk := q(m.primaryKey.Column)

	columns := make([]string, len(m.fields))
	assignments := make([]string, len(m.fields))
	for i, f := range m.fields {
		columns[i] = q(f.Column)
		assignments[i] = q(f.Column) + "=?"
	}

	m.selectSQL = fmt.Sprintf("select %s from %s",
		strings.Join(append([]string{pk}, columns...), ", "), table)
	m.insertSQL = fmt.Sprintf("insert into %s (%s) values (%s)",
		table,
		strings.Join(append(columns, pk), ", "),
		placeholders(len(columns)+1))
	m.updateSQL = fmt.Sprintf("update %s set %s where %s=?",
		table, strings.Join(assignments, ", "), pk)
	m.deleteSQL = fmt.Sprintf("delete from %s where %s=?", table, pk)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Table returns the table name.
func (m *Model) Table() string { return m.table }

// Dialect returns the model's SQL dialect.
func (m *Model) Dialect() Dialect { return m.dialect }

// PrimaryKey returns the primary key field.
func (m *Model) PrimaryKey() Field { return m.primaryKey }

// Fields returns the non primary key fields in declaration order.
func (m *Model) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Field returns the field with the given name.
func (m *Model) Field(name string) (Field, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// Mappings returns the field name to column mapping.
func (m *Model) Mappings() map[string]string {
	out := make(map[string]string, len(m.byName))
	for name, f := range m.byName {
		out[name] = f.Column
	}
	return out
}

// SelectSQL returns the select statement template, with ? placeholders.
func (m *Model) SelectSQL() string { return m.selectSQL }

// InsertSQL returns the insert statement template.
// Values are the non primary key fields in order, then the primary key.
func (m *Model) InsertSQL() string { return m.insertSQL }

// UpdateSQL returns the update-by-primary-key statement template.
func (m *Model) UpdateSQL() string { return m.updateSQL }

// DeleteSQL returns the delete-by-primary-key statement template.
func (m *Model) DeleteSQL() string { return m.deleteSQL }

// CreateTableSQL renders a create table statement for the model.
func (m *Model) CreateTableSQL() string {
	q := m.dialect.Quote
	var b strings.Builder
	fmt.Fprintf(&b, "create table %s (\n", q(m.table))
	fmt.Fprintf(&b, "    %s %s not null,\n", q(m.primaryKey.Column), m.primaryKey.Type)
	for _, f := range m.fields {
		fmt.Fprintf(&b, "    %s %s,\n", q(f.Column), f.Type)
	}
	fmt.Fprintf(&b, "    primary key (%s)\n)", q(m.primaryKey.Column))
	return b.String()
}

// fromRow converts a row keyed by column into a record keyed by field name.
func (m *Model) fromRow(row Record) Record {
	rec := make(Record, len(row))
	for col, v := range row {
		if name, ok := m.byColumn[col]; ok {
			rec[name] = v
			continue
		}
		rec[col] = v
	}
	return rec
}

func (m *Model) String() string {
	return fmt.Sprintf("Model(%s)", m.table)
}
