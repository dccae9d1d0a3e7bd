package internal

import "strconv"

// Scalar lists the types typed parameter helpers convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~uint | ~uint64 | ~float64 | ~bool
}

// ContextValue returns the value stored under key, or the zero value of T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a typed path parameter. Unparsable values yield the zero value.
func Param[T Scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Param(name))
	return v
}

// ParamDefault returns a typed path parameter or defaultValue when it is
// empty or cannot be parsed.
func ParamDefault[T Scalar](c Context, name string, defaultValue T) T {
	return orDefault(c.Param(name), defaultValue)
}

// Query returns a typed query parameter. Unparsable values yield the zero value.
func Query[T Scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Query(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	return orDefault(c.Query(name), defaultValue)
}

func orDefault[T Scalar](raw string, defaultValue T) T {
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// convertParam converts a raw string to the target type T.
// Returns the converted value and true on success, or the zero value and false on failure.
func convertParam[T Scalar](raw string) (T, bool) {
	var zero T
	var (
		v   any
		err error
	)
	switch any(zero).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case uint:
		var u uint64
		u, err = strconv.ParseUint(raw, 10, 0)
		v = uint(u)
	case uint64:
		v, err = strconv.ParseUint(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	return v.(T), true
}
