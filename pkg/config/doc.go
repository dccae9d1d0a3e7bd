// Package config loads application settings.
//
// Defaults and deployment values come from environment variables declared
// with env struct tags. An optional YAML file overrides individual values:
//
//	db:
//	  host: db.internal
//	  max_open_conns: 20
//	log:
//	  level: debug
//
// Only keys present in the file replace the environment values.
package config
