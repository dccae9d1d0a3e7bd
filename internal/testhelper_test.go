package internal_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrymomot/awesome/internal"
)

// routes adapts a function to internal.Handler.
type routes func(r internal.Router)

func (fn routes) Routes(r internal.Router) { fn(r) }

// newApp builds an app with a debug text logger captured in the returned buffer.
func newApp(t *testing.T, register func(r internal.Router), opts ...internal.Option) (*internal.App, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]internal.Option{internal.WithCustomLogger(log)}, opts...)
	opts = append(opts, internal.WithHandlers(routes(register)))
	return internal.New(opts...), &logs
}

func do(app http.Handler, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func get(app http.Handler, target string) *httptest.ResponseRecorder {
	return do(app, http.MethodGet, target, "", nil)
}

func postJSON(app http.Handler, target, body string) *httptest.ResponseRecorder {
	return do(app, http.MethodPost, target, "application/json", strings.NewReader(body))
}

func postForm(app http.Handler, target, body string) *httptest.ResponseRecorder {
	return do(app, http.MethodPost, target, "application/x-www-form-urlencoded", strings.NewReader(body))
}
