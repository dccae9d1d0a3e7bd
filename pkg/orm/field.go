package orm

import (
	"fmt"
	"reflect"
)

// SQL column types used by the field constructors.
const (
	TypeString  = "varchar(100)"
	TypeBoolean = "boolean"
	TypeInteger = "bigint"
	TypeFloat   = "real"
	TypeText    = "text"
)

// Field describes one mapped attribute of a model.
// Fields are values; a Model keeps its own copies once defined.
type Field struct {
	// Name is the record key.
	Name string
	// Column is the database column. Defaults to Name.
	Column string
	// Type is the column DDL, e.g. "varchar(50)".
	Type string
	// Default is a value or a func() any producer used by Save.
	Default any
	// PrimaryKey marks the single identifying field of a model.
	PrimaryKey bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// PrimaryKey marks the field as the model's primary key.
func PrimaryKey() FieldOption {
	return func(f *Field) {
		f.PrimaryKey = true
	}
}

// Default sets the default value. A function with no arguments and one
// result is a producer called for every new record.
//
//	orm.String("id", orm.PrimaryKey(), orm.Default(id.Next), orm.DDL("varchar(50)"))
func Default(v any) FieldOption {
	return func(f *Field) {
		f.Default = producer(v)
	}
}

// producer wraps a zero-argument, single-result function as func() any.
// Other values are returned unchanged.
func producer(v any) any {
	switch fn := v.(type) {
	case func() any:
		return fn
	case func() string:
		return func() any { return fn() }
	case func() float64:
		return func() any { return fn() }
	case func() int64:
		return func() any { return fn() }
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return v
	}
	t := rv.Type()
	if t.NumIn() != 0 || t.NumOut() != 1 {
		return v
	}
	return func() any { return rv.Call(nil)[0].Interface() }
}

// DDL overrides the column type.
func DDL(sql string) FieldOption {
	return func(f *Field) {
		f.Type = sql
	}
}

// Column maps the field to a differently named column.
func Column(name string) FieldOption {
	return func(f *Field) {
		f.Column = name
	}
}

func newField(name, ddl string, def any, opts []FieldOption) Field {
	f := Field{Name: name, Type: ddl, Default: def}
	for _, opt := range opts {
		opt(&f)
	}
	if f.Column == "" {
		f.Column = f.Name
	}
	return f
}

// String declares a varchar(100) field with no default.
func String(name string, opts ...FieldOption) Field {
	return newField(name, TypeString, nil, opts)
}

// Boolean declares a boolean field defaulting to false.
func Boolean(name string, opts ...FieldOption) Field {
	return newField(name, TypeBoolean, false, opts)
}

// Integer declares a bigint field defaulting to 0.
func Integer(name string, opts ...FieldOption) Field {
	return newField(name, TypeInteger, int64(0), opts)
}

// Float declares a real field defaulting to 0.0.
func Float(name string, opts ...FieldOption) Field {
	return newField(name, TypeFloat, 0.0, opts)
}

// Text declares a text field with no default.
func Text(name string, opts ...FieldOption) Field {
	return newField(name, TypeText, nil, opts)
}

// DefaultValue returns the field default, calling a producer if set.
// Returns nil when the field has no default.
func (f Field) DefaultValue() any {
	if fn, ok := f.Default.(func() any); ok {
		return fn()
	}
	return f.Default
}

func (f Field) String() string {
	return fmt.Sprintf("<%s, %s>", f.Type, f.Name)
}
