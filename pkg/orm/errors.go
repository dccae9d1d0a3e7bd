package orm

import "errors"

var (
	ErrEmptyTable          = errors.New("orm: table name is empty")
	ErrEmptyFieldName      = errors.New("orm: field name is empty")
	ErrPrimaryKeyNotFound  = errors.New("orm: primary key not found")
	ErrDuplicatePrimaryKey = errors.New("orm: duplicate primary key")
	ErrDuplicateField      = errors.New("orm: duplicate field")
	ErrNoFields            = errors.New("orm: model has no fields besides the primary key")
	ErrInvalidLimit        = errors.New("orm: invalid limit value")
	ErrNotFound            = errors.New("orm: record not found")
	ErrTxNotSupported      = errors.New("orm: querier does not support transactions")
	ErrQuery               = errors.New("orm: query failed")
	ErrExec                = errors.New("orm: statement failed")
)
