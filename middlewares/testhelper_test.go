package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/awesome/internal"
)

// routes adapts a function to internal.Handler.
type routes func(r internal.Router)

func (fn routes) Routes(r internal.Router) { fn(r) }

// serve runs one GET / request through an app using mw and h.
func serve(t *testing.T, req *http.Request, h internal.HandlerFunc, mw ...internal.Middleware) (*httptest.ResponseRecorder, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	app := internal.New(
		internal.WithCustomLogger(log),
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", h)
		})),
	)

	if req == nil {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec, &logs
}

func httptestGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}
