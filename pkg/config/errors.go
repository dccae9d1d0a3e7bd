package config

import "errors"

var (
	ErrParseEnv      = errors.New("config: failed to parse environment")
	ErrReadOverride  = errors.New("config: failed to read override file")
	ErrParseOverride = errors.New("config: failed to parse override file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
