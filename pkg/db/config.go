package db

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Supported database/sql driver names.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

// ErrInvalidConfig is returned when the configuration cannot produce a DSN.
var ErrInvalidConfig = errors.New("db: invalid configuration")

// Default server ports by driver, used when Config.Port is zero.
const (
	defaultMySQLPort    = 3306
	defaultPostgresPort = 5432
)

// Config holds database connection parameters.
// All fields are populated from environment variables for deployment convenience.
type Config struct {
	// Driver selects the database/sql driver: "mysql" or "pgx".
	Driver string `env:"DB_DRIVER" envDefault:"mysql" yaml:"driver"`

	// URL is a complete DSN. When set, the discrete connection fields are ignored.
	URL string `env:"DB_URL" yaml:"url"`

	Host     string `env:"DB_HOST" envDefault:"localhost" yaml:"host"`
	Port     int    `env:"DB_PORT" yaml:"port"` // zero picks the driver's default port
	User     string `env:"DB_USER" envDefault:"www-data" yaml:"user"`
	Password string `env:"DB_PASSWORD" envDefault:"www-data" yaml:"password"`
	Name     string `env:"DB_NAME" envDefault:"awesome" yaml:"name"`
	Charset  string `env:"DB_CHARSET" envDefault:"utf8" yaml:"charset"`

	// Pool limits. MaxOpenConns bounds concurrent connections,
	// MinConns is the number of idle connections kept open.
	MaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"10" yaml:"max_open_conns"`
	MinConns     int `env:"DB_MIN_CONNS" envDefault:"1" yaml:"min_conns"`

	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m" yaml:"max_conn_idle_time"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m" yaml:"max_conn_lifetime"`

	// Retry configuration for handling transient network issues during startup.
	RetryAttempts int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"`

	MigrationsTable string `env:"DB_MIGRATIONS_TABLE" envDefault:"schema_migrations" yaml:"migrations_table"`
}

// DSN builds the driver specific data source name.
func (c Config) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}

	switch c.Driver {
	case DriverMySQL, "":
		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = c.HostPort()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.DBName = c.Name
		mc.ParseTime = true
		if c.Charset != "" {
			mc.Params = map[string]string{"charset": c.Charset}
		}
		return mc.FormatDSN(), nil

	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   c.HostPort(),
			Path:   "/" + c.Name,
		}
		return u.String(), nil
	}

	return "", fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, c.Driver)
}

// HostPort joins the host with the configured port or the driver's default one.
func (c Config) HostPort() string {
	port := c.Port
	if port <= 0 {
		port = defaultMySQLPort
		if c.Driver == DriverPostgres {
			port = defaultPostgresPort
		}
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// Dialect returns the goose dialect name for the configured driver.
func (c Config) Dialect() string {
	if c.Driver == DriverPostgres {
		return "postgres"
	}
	return "mysql"
}
