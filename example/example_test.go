package example_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/example"
	"github.com/dmitrymomot/awesome/example/models"
	"github.com/dmitrymomot/awesome/pkg/logger"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

const passwd = "0123456789abcdef0123456789abcdef01234567"

func newBlog(t *testing.T) *awesome.App {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	m, err := models.New(orm.MySQL)
	require.NoError(t, err)
	for _, stmt := range m.Schema() {
		_, err := conn.Exec(stmt)
		require.NoError(t, err)
	}

	app, err := example.New(conn, example.Config{Dialect: orm.MySQL, Logger: logger.NewNope()})
	require.NoError(t, err)
	return app
}

func call(t *testing.T, app *awesome.App, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func register(t *testing.T, app *awesome.App, email string) string {
	t.Helper()
	rec, user := call(t, app, http.MethodPost, "/api/users", map[string]any{
		"email": email, "name": "Bob", "passwd": passwd,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotEmpty(t, user["id"])
	return user["id"].(string)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user with masked password", func(t *testing.T) {
		t.Parallel()
		app := newBlog(t)

		rec, user := call(t, app, http.MethodPost, "/api/users", map[string]any{
			"email": " Bob@Example.com ", "name": "Bob", "passwd": passwd,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bob@example.com", user["email"])
		assert.Equal(t, "******", user["passwd"])
		assert.Len(t, user["id"], 50)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()
		app := newBlog(t)
		register(t, app, "bob@example.com")

		rec, body := call(t, app, http.MethodPost, "/api/users", map[string]any{
			"email": "bob@example.com", "name": "Bob", "passwd": passwd,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "register:failed", body["error"])
		assert.Equal(t, "email", body["data"])
	})

	t.Run("validates input", func(t *testing.T) {
		t.Parallel()
		app := newBlog(t)

		tests := []struct {
			name  string
			input map[string]any
			data  string
		}{
			{"blank name", map[string]any{"email": "a@b.com", "name": " ", "passwd": passwd}, "name"},
			{"bad email", map[string]any{"email": "nope", "name": "Bob", "passwd": passwd}, "email"},
			{"bad passwd", map[string]any{"email": "a@b.com", "name": "Bob", "passwd": "secret"}, "passwd"},
		}
		for _, tt := range tests {
			_, body := call(t, app, http.MethodPost, "/api/users", tt.input)
			assert.Equal(t, awesome.APICodeValueInvalid, body["error"], tt.name)
			assert.Equal(t, tt.data, body["data"], tt.name)
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		t.Parallel()
		app := newBlog(t)

		rec, _ := call(t, app, http.MethodPost, "/api/users", map[string]any{"email": "a@b.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing argument: name\n", rec.Body.String())
	})

	t.Run("form body", func(t *testing.T) {
		t.Parallel()
		app := newBlog(t)

		form := url.Values{"email": {"form@example.com"}, "name": {"Form"}, "passwd": {passwd}}
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"form@example.com"`)
	})
}

func TestBlogs(t *testing.T) {
	t.Parallel()
	app := newBlog(t)
	uid := register(t, app, "writer@example.com")

	var ids []string
	for _, name := range []string{"First", "Second", "Third"} {
		rec, blog := call(t, app, http.MethodPost, "/api/blogs", map[string]any{
			"user_id": uid, "name": name, "summary": name + " summary", "content": "**" + name + "**",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Bob", blog["user_name"])
		ids = append(ids, blog["id"].(string))
	}

	t.Run("paginated listing", func(t *testing.T) {
		rec, body := call(t, app, http.MethodGet, "/api/blogs?page=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := body["page"].(map[string]any)
		assert.EqualValues(t, 3, page["item_count"])
		assert.EqualValues(t, 1, page["page_count"])
		assert.Len(t, body["blogs"], 3)
	})

	t.Run("out of range page is empty", func(t *testing.T) {
		_, body := call(t, app, http.MethodGet, "/api/blogs?page=5", nil)
		page := body["page"].(map[string]any)
		assert.EqualValues(t, 1, page["page_index"])
		assert.EqualValues(t, 0, page["limit"])
		assert.Equal(t, []any{}, body["blogs"])
	})

	t.Run("get by id", func(t *testing.T) {
		_, blog := call(t, app, http.MethodGet, "/api/blogs/"+ids[0], nil)
		assert.Equal(t, "First", blog["name"])

		_, body := call(t, app, http.MethodGet, "/api/blogs/missing", nil)
		assert.Equal(t, awesome.APICodeValueNotFound, body["error"])
	})

	t.Run("unknown author", func(t *testing.T) {
		_, body := call(t, app, http.MethodPost, "/api/blogs", map[string]any{
			"user_id": "nobody", "name": "x", "summary": "x", "content": "x",
		})
		assert.Equal(t, awesome.APICodeValueNotFound, body["error"])
		assert.Equal(t, "user_id", body["data"])
	})

	t.Run("comments", func(t *testing.T) {
		rec, comment := call(t, app, http.MethodPost, "/api/blogs/"+ids[1]+"/comments", map[string]any{
			"user_id": uid, "content": "nice",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, ids[1], comment["blog_id"])

		_, body := call(t, app, http.MethodGet, "/api/blogs/"+ids[1]+"/comments", nil)
		assert.Len(t, body["comments"], 1)
	})

	t.Run("pages", func(t *testing.T) {
		rec, _ := call(t, app, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "First")
		assert.Contains(t, rec.Body.String(), `href="/blog/`+ids[0]+`"`)

		rec, _ = call(t, app, http.MethodGet, "/blog/"+ids[0], nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<strong>First</strong>")

		rec, _ = call(t, app, http.MethodGet, "/register", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `action="/api/users"`)
	})

	t.Run("static files", func(t *testing.T) {
		rec, _ := call(t, app, http.MethodGet, "/static/style.css", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete removes comments", func(t *testing.T) {
		rec, _ := call(t, app, http.MethodDelete, "/api/blogs/"+ids[1], nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		_, body := call(t, app, http.MethodGet, "/api/blogs/"+ids[1], nil)
		assert.Equal(t, awesome.APICodeValueNotFound, body["error"])

		_, body = call(t, app, http.MethodGet, "/api/blogs", nil)
		assert.Len(t, body["blogs"], 2)
	})
}

func TestAPI_CORS(t *testing.T) {
	t.Parallel()

	app := newBlog(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/blogs", nil)
	req.Header.Set("Origin", "https://reader.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.Header.Set("Origin", "https://reader.test")
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://reader.test")
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), "pages stay same-origin")
}
