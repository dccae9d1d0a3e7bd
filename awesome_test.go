package awesome_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome"
)

type greetInput struct {
	Name  string `param:"name,required"`
	Times int    `param:"times" default:"1"`
}

type greeter struct{}

func (greeter) Routes(r awesome.Router) {
	r.GET("/greet", func(in greetInput) awesome.Data {
		return awesome.Data{"greeting": strings.Repeat("hi "+in.Name+" ", in.Times)}
	})
	r.POST("/users/{id}", func(c awesome.Context, args map[string]any) (any, error) {
		if args["email"] == "" {
			return nil, awesome.NewValueError("email", "Invalid email.")
		}
		return args, nil
	})
	r.GET("/go", func() string { return "redirect:/greet?name=x" })
	r.GET("/raw", func(c awesome.Context) error {
		return c.String(http.StatusTeapot, "raw")
	})
}

func newApp(t *testing.T) *awesome.App {
	t.Helper()
	var logs bytes.Buffer
	return awesome.New(
		awesome.WithCustomLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		awesome.WithHandlers(greeter{}),
	)
}

func TestApp_EndpointBinding(t *testing.T) {
	t.Parallel()
	app := newApp(t)

	t.Run("query arguments with defaults", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/greet?name=bob&times=2", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "hi bob hi bob ", body["greeting"])
	})

	t.Run("missing required argument", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/greet", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing argument: name\n", rec.Body.String())
	})

	t.Run("path parameter wins over body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/users/42", strings.NewReader(`{"id":"7","email":"a@b.c"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "42", body["id"])
		assert.Equal(t, "a@b.c", body["email"])
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/users/42", strings.NewReader(`{"email":""}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, awesome.APICodeValueInvalid, body["error"])
		assert.Equal(t, "email", body["data"])
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/go", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/greet?name=x", rec.Header().Get("Location"))
	})

	t.Run("plain handler", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/raw", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "raw", rec.Body.String())
	})
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	ep, err := awesome.Analyze(func(c awesome.Context, in greetInput) error { return nil })
	require.NoError(t, err)
	assert.True(t, ep.HasContext())
	assert.Equal(t, []string{"name"}, ep.Required())

	_, err = awesome.Analyze(func(a, b int) {})
	assert.ErrorIs(t, err, awesome.ErrInvalidEndpoint)
}

func TestHTTPErrors(t *testing.T) {
	t.Parallel()

	err := awesome.ErrNotFound("nope")
	assert.True(t, awesome.IsHTTPError(err))
	httpErr, ok := awesome.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
