package orm

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Instance is a record bound to its model.
type Instance struct {
	Record
	model *Model
}

// New binds a record to the model. A nil record starts empty.
func (m *Model) New(r Record) *Instance {
	if r == nil {
		r = Record{}
	}
	return &Instance{Record: r, model: m}
}

// Model returns the instance's model.
func (i *Instance) Model() *Model { return i.model }

// Value returns the stored value for key, or nil.
func (i *Instance) Value(key string) any {
	return i.Record[key]
}

// ValueOrDefault returns the stored value for key. A missing or nil value is
// replaced by the field default, which is stored on the instance.
func (i *Instance) ValueOrDefault(key string) any {
	v := i.Record[key]
	if v != nil {
		return v
	}
	f, ok := i.model.Field(key)
	if !ok || f.Default == nil {
		return nil
	}
	v = f.DefaultValue()
	i.Record[key] = v
	return v
}

// MarshalJSON encodes the instance as its plain record.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Record)
}

// Save inserts the instance. Missing values are filled from field defaults.
func (i *Instance) Save(ctx context.Context, db *DB) error {
	m := i.model
	args := make([]any, 0, len(m.fields)+1)
	for _, f := range m.fields {
		args = append(args, i.ValueOrDefault(f.Name))
	}
	args = append(args, i.ValueOrDefault(m.primaryKey.Name))

	rows, err := db.Execute(ctx, m.dialect.Rebind(m.insertSQL), args...)
	if err != nil {
		return err
	}
	if rows != 1 {
		db.logger.WarnContext(ctx, "failed to insert record", slog.Int64("affected_rows", rows))
	}
	return nil
}

// Update writes the stored values by primary key. Defaults are not applied.
func (i *Instance) Update(ctx context.Context, db *DB) error {
	m := i.model
	if len(m.fields) == 0 {
		return ErrNoFields
	}
	args := make([]any, 0, len(m.fields)+1)
	for _, f := range m.fields {
		args = append(args, i.Value(f.Name))
	}
	args = append(args, i.Value(m.primaryKey.Name))

	rows, err := db.Execute(ctx, m.dialect.Rebind(m.updateSQL), args...)
	if err != nil {
		return err
	}
	if rows != 1 {
		db.logger.WarnContext(ctx, "failed to update by primary key", slog.Int64("affected_rows", rows))
	}
	return nil
}

// Remove deletes the instance by primary key.
func (i *Instance) Remove(ctx context.Context, db *DB) error {
	m := i.model
	rows, err := db.Execute(ctx, m.dialect.Rebind(m.deleteSQL), i.Value(m.primaryKey.Name))
	if err != nil {
		return err
	}
	if rows != 1 {
		db.logger.WarnContext(ctx, "failed to remove by primary key", slog.Int64("affected_rows", rows))
	}
	return nil
}
