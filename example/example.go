// Package example is a small blog built on awesome: users register through
// the JSON API, blogs and comments are listed page by page and rendered with
// the view registry.
package example

import (
	"embed"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/example/handlers"
	"github.com/dmitrymomot/awesome/example/models"
	"github.com/dmitrymomot/awesome/example/views"
	"github.com/dmitrymomot/awesome/middlewares"
	"github.com/dmitrymomot/awesome/pkg/logger"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

//go:embed static
var static embed.FS

// Config configures the blog application.
type Config struct {
	// Dialect of the database behind the Querier. Defaults to orm.MySQL.
	Dialect orm.Dialect
	// Logger defaults to a no-op logger.
	Logger *slog.Logger
	// Assets served under /static/. Defaults to the embedded stylesheet.
	Assets fs.FS
	// CORSOrigins may call the JSON API from a browser. Empty allows any origin.
	CORSOrigins []string
}

// New builds the blog application over q. Extra options are applied last.
func New(q orm.Querier, cfg Config, opts ...awesome.Option) (*awesome.App, error) {
	if cfg.Dialect.Name() == "" {
		cfg.Dialect = orm.MySQL
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNope()
	}
	assets, dir := cfg.Assets, "."
	if assets == nil {
		assets, dir = static, "static"
	}

	m, err := models.New(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	db := orm.NewDB(q, orm.WithLogger(cfg.Logger))

	base := []awesome.Option{
		awesome.WithCustomLogger(cfg.Logger),
		awesome.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Logger(),
			middlewares.Timeout(middlewares.DefaultTimeout),
		),
		awesome.WithRenderer(views.New()),
		awesome.WithStaticFiles("/static/", assets, dir),
		awesome.WithHandlers(handlers.New(db, m, middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.CORSOrigins...),
			middlewares.WithExposeHeaders(middlewares.RequestIDHeader),
		))),
	}
	return awesome.New(append(base, opts...)...), nil
}
