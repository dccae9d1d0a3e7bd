package orm

// Record is a row as a mapping from field name to value.
type Record map[string]any

// Get returns the value for key and whether it is present.
func (r Record) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// Set stores a value.
func (r Record) Set(key string, value any) {
	r[key] = value
}

// Value returns the value for key converted to T, or the zero value when the
// key is missing or holds another type.
//
//	email := orm.Value[string](user.Record, "email")
func Value[T any](r Record, key string) T {
	if v, ok := r[key].(T); ok {
		return v
	}
	var zero T
	return zero
}
