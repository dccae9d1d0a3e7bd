package internal_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/internal"
)

type registerInput struct {
	Email  string `param:"email,required"`
	Name   string `param:"name,required"`
	Passwd string `param:"passwd,required"`
}

type listInput struct {
	Page int    `param:"page" default:"1"`
	Sort string `param:"sort"`
}

type commentInput struct {
	ID      string         `param:"id,required"`
	Content string         `param:"content"`
	Extra   map[string]any `param:"*"`
	Ignored string         `param:"-"`
}

type badVarKeyword struct {
	X string `param:"*"`
}

type duplicateKey struct {
	A string `param:"x"`
	B string `param:"x"`
}

type typedInput struct {
	Count   int           `param:"count"`
	Admin   bool          `param:"admin"`
	Wait    time.Duration `param:"wait"`
	Tags    []string      `param:"tags"`
	Created time.Time     `param:"created"`
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("struct input with context", func(t *testing.T) {
		t.Parallel()

		e, err := internal.Analyze(func(c internal.Context, in registerInput) (any, error) { return nil, nil })
		require.NoError(t, err)
		assert.True(t, e.HasContext())
		assert.False(t, e.HasVarKeyword())
		assert.Equal(t, []string{"email", "name", "passwd"}, e.Keys())
		assert.Equal(t, []string{"email", "name", "passwd"}, e.Required())
		assert.Equal(t, "c,email,name,passwd", e.Signature())
	})

	t.Run("defaults are not required", func(t *testing.T) {
		t.Parallel()

		e, err := internal.Analyze(func(in *listInput) any { return nil })
		require.NoError(t, err)
		assert.False(t, e.HasContext())
		assert.Empty(t, e.Required())
		assert.Equal(t, "page,sort", e.Signature())
	})

	t.Run("var keyword field", func(t *testing.T) {
		t.Parallel()

		e, err := internal.Analyze(func(in commentInput) {})
		require.NoError(t, err)
		assert.True(t, e.HasVarKeyword())
		assert.Equal(t, []string{"id", "content"}, e.Keys())
		assert.Equal(t, "id,content,**extra", e.Signature())
	})

	t.Run("map input", func(t *testing.T) {
		t.Parallel()

		e, err := internal.Analyze(func(c internal.Context, kw map[string]any) error { return nil })
		require.NoError(t, err)
		assert.True(t, e.HasVarKeyword())
		assert.Equal(t, "c,**kw", e.Signature())
	})

	invalid := map[string]any{
		"not a function":       42,
		"nil":                  nil,
		"context not first":    func(in listInput, c internal.Context) {},
		"two inputs":           func(a listInput, b listInput) {},
		"scalar input":         func(id string) {},
		"variadic":             func(c internal.Context, in ...listInput) {},
		"second result":        func() (any, any) { return nil, nil },
		"too many results":     func() (any, any, error) { return nil, nil, nil },
		"bad var keyword type": func(in badVarKeyword) {},
		"duplicate key":        func(in duplicateKey) {},
	}
	for name, fn := range invalid {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := internal.Analyze(fn)
			assert.ErrorIs(t, err, internal.ErrInvalidEndpoint)
		})
	}

	assert.Panics(t, func() { internal.MustAnalyze(func(a, b listInput) {}) })
}

func TestEndpoint_QueryBinding(t *testing.T) {
	t.Parallel()

	var got listInput
	app, _ := newApp(t, func(r internal.Router) {
		r.GET("/blogs", func(in listInput) internal.Data {
			got = in
			return internal.Data{"page": in.Page}
		})
	})

	rec := get(app, "/blogs?page=3&sort=name&unknown=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, listInput{Page: 3, Sort: "name"}, got)
	assert.JSONEq(t, `{"page":3}`, rec.Body.String())
	assert.Equal(t, "application/json;charset=utf-8", rec.Header().Get("Content-Type"))

	rec = get(app, "/blogs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, got.Page, "default applies")

	rec = get(app, "/blogs?page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid argument\n", rec.Body.String())
}

func TestEndpoint_RequiredArguments(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t, func(r internal.Router) {
		r.POST("/api/users", func(c internal.Context, in registerInput) (any, error) {
			return internal.Data{"email": in.Email, "name": in.Name}, nil
		})
		r.GET("/api/users", func(in registerInput) string { return in.Email })
	})

	rec := postJSON(app, "/api/users", `{"email":"a@b.c","name":"A","passwd":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@b.c","name":"A"}`, rec.Body.String())

	rec = postJSON(app, "/api/users", `{"email":"a@b.c","name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing argument: passwd\n", rec.Body.String())

	rec = get(app, "/api/users")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing argument: email\n", rec.Body.String())
}

func TestEndpoint_BodyErrors(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t, func(r internal.Router) {
		r.POST("/x", func(in listInput) int { return http.StatusCreated })
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"missing content type", "", "{}", "Missing Content-Type\n"},
		{"json array", "application/json", "[1,2]", "JSON body must be object.\n"},
		{"invalid json", "application/json", "{", "Invalid JSON body\n"},
		{"unsupported", "text/plain", "page=1", "Unsupported Content-Type: text/plain\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(app, http.MethodPost, "/x", tt.contentType, strings.NewReader(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}

	rec := do(app, http.MethodPost, "/x", "application/json; charset=utf-8", strings.NewReader(`{"page":2}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestEndpoint_FormBody(t *testing.T) {
	t.Parallel()

	var got listInput
	app, _ := newApp(t, func(r internal.Router) {
		r.PUT("/x", func(in listInput) { got = in })
	})

	rec := do(app, http.MethodPut, "/x", "application/x-www-form-urlencoded", strings.NewReader("page=4&sort=a&sort=b"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, listInput{Page: 4, Sort: "a"}, got, "first value per key")
}

func TestEndpoint_PathParams(t *testing.T) {
	t.Parallel()

	var got commentInput
	app, logs := newApp(t, func(r internal.Router) {
		r.POST("/api/blogs/{id}/comments", func(in commentInput) error {
			got = in
			return nil
		})
		r.GET("/api/blogs/{id}", func(kw map[string]any) map[string]any { return kw })
	})

	rec := postJSON(app, "/api/blogs/42/comments", `{"id":"7","content":"hi","other":true}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "42", got.ID, "path wins over body")
	assert.Equal(t, "hi", got.Content)
	assert.Equal(t, map[string]any{"id": "42", "content": "hi", "other": true}, got.Extra)
	assert.Contains(t, logs.String(), "duplicate arg name in named arg and kw args")

	rec = get(app, "/api/blogs/9")
	assert.JSONEq(t, `{"id":"9"}`, rec.Body.String(), "no query means path params only")
}

func TestEndpoint_WithoutArguments(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t, func(r internal.Router) {
		r.GET("/ping", func() string { return "pong" })
		r.GET("/ctx", func(c internal.Context) (internal.Status, error) {
			return internal.Status{Code: http.StatusAccepted, Message: c.Query("q")}, nil
		})
	})

	rec := get(app, "/ping?ignored=1")
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, "text/html;charset=utf-8", rec.Header().Get("Content-Type"))

	rec = get(app, "/ctx?q=hello")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
}

func TestEndpoint_WeakTyping(t *testing.T) {
	t.Parallel()

	var got typedInput
	app, _ := newApp(t, func(r internal.Router) {
		r.GET("/t", func(in typedInput) { got = in })
	})

	rec := get(app, "/t?count=5&admin=true&wait=1s&tags=a,b&created=2024-01-02T03:04:05Z")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 5, got.Count)
	assert.True(t, got.Admin)
	assert.Equal(t, time.Second, got.Wait)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got.Created)
}

func TestEndpoint_Errors(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t, func(r internal.Router) {
		r.POST("/api/users", func(in registerInput) (any, error) {
			return nil, internal.NewValueError("email", "Invalid email.")
		})
		r.GET("/fail", func() error { return errors.New("db down") })
		r.GET("/missing", func() error { return internal.ErrNotFound("Blog not found") })
	})

	rec := postForm(app, "/api/users", "email=x&name=y&passwd=z")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":"value:invalid","data":"email","message":"Invalid email."}`, rec.Body.String())

	rec = get(app, "/fail")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = get(app, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog not found\n", rec.Body.String())
}

func TestRouter_Registration(t *testing.T) {
	t.Parallel()

	app, logs := newApp(t, func(r internal.Router) {
		r.Route("/api", func(r internal.Router) {
			r.GET("/blogs/{id}", func(c internal.Context, in commentInput) error { return nil })
			r.DELETE("/blogs/{id}", func(c internal.Context) error { return nil })
		})
	})

	routes := app.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "GET", routes[0].Method)
	assert.Equal(t, "/api/blogs/{id}", routes[0].Path)
	assert.Equal(t, "c,id,content,**extra", routes[0].Signature)
	assert.Equal(t, "HandlerFunc", routes[1].Handler)
	assert.Contains(t, logs.String(), "add route GET /api/blogs/{id} => ")

	assert.Panics(t, func() {
		newApp(t, func(r internal.Router) {
			r.GET("/bad", func(id string) {})
		})
	})
}
