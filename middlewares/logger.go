package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/awesome/internal"
)

// Logger logs every request as "Request: METHOD path" before it is handled,
// and its status, size and duration once the handler returns.
func Logger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			c.LogInfo("Request: " + r.Method + " " + r.URL.Path)

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			c.LogDebug("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
