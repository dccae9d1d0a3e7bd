package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/awesome/pkg/db"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

// Config is the application configuration.
type Config struct {
	Server ServerConfig  `yaml:"server"`
	Log    logger.Config `yaml:"log"`
	DB     db.Config     `yaml:"db"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":9000" yaml:"addr"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s" yaml:"shutdown_timeout"`
	// StaticDir replaces the embedded assets served under /static/ when set.
	StaticDir string `env:"STATIC_DIR" yaml:"static_dir"`
	// CORSOrigins is a comma separated list of origins allowed to call the API.
	CORSOrigins []string `env:"HTTP_CORS_ORIGINS" envSeparator:"," yaml:"cors_origins"`
}

// Load reads the configuration from the process environment and applies
// the YAML override file at path on top. A missing override file is ignored.
func Load(path string) (*Config, error) {
	var override []byte
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, errors.Join(ErrReadOverride, err)
		default:
			override = b
		}
	}
	return Parse(env.ToMap(os.Environ()), override)
}

// Parse builds the configuration from the given environment and an optional
// YAML override. Values present in the override win over the environment.
func Parse(environ map[string]string, override []byte) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, errors.Join(ErrParseEnv, err)
	}
	if len(override) > 0 {
		if err := yaml.Unmarshal(override, &cfg); err != nil {
			return nil, errors.Join(ErrParseOverride, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would fail later at startup.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server address is empty", ErrInvalidConfig)
	}
	switch c.DB.Driver {
	case db.DriverMySQL, db.DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, c.DB.Driver)
	}
	return nil
}
