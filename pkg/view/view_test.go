package view

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Render(t *testing.T) {
	t.Parallel()

	reg := New(
		WithTemplate("hello.html", func(data map[string]any, f Filters) templ.Component {
			return Element("p", templ.Attributes{"class": "greeting"}, Textf("Hello, %v", data["name"]))
		}),
		WithFilter("upper", func(v any) string { return "UPPER" }),
	)

	var buf bytes.Buffer
	err := reg.Render(context.Background(), &buf, "hello.html", map[string]any{"name": "<b>Bob</b>"})
	require.NoError(t, err)
	assert.Equal(t, `<p class="greeting">Hello, &lt;b&gt;Bob&lt;/b&gt;</p>`, buf.String())

	assert.Equal(t, "UPPER", reg.Filters().Apply("upper", 1))
	assert.Equal(t, "42", reg.Filters().Apply("unknown", 42))
	assert.Equal(t, []string{"hello.html"}, reg.Names())
}

func TestRegistry_NotFound(t *testing.T) {
	t.Parallel()

	reg := New()
	err := reg.Render(context.Background(), &bytes.Buffer{}, "missing.html", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRegistry_RenderError(t *testing.T) {
	t.Parallel()

	reg := New()
	reg.Register("broken.html", func(map[string]any, Filters) templ.Component {
		return templ.Raw("", assert.AnError)
	})

	err := reg.Render(context.Background(), &bytes.Buffer{}, "broken.html", nil)
	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Page("A & B", Text("body")).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<title>A &amp; B</title>")
	assert.Contains(t, buf.String(), "<body>body</body>")
}

func TestTimeAgo(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) float64 { return float64(now.Add(-d).Unix()) }

	assert.Equal(t, "1 minute ago", timeAgoAt(at(30*time.Second), now))
	assert.Equal(t, "5 minutes ago", timeAgoAt(at(5*time.Minute), now))
	assert.Equal(t, "3 hours ago", timeAgoAt(at(3*time.Hour), now))
	assert.Equal(t, "2 days ago", timeAgoAt(at(49*time.Hour), now))

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Local().Format("2006-01-02"), timeAgoAt(float64(old.Unix()), now))
}

func TestTimeAgoFilter(t *testing.T) {
	t.Parallel()

	recent := float64(time.Now().Unix())
	assert.Equal(t, "1 minute ago", TimeAgoFilter(recent))
	assert.Equal(t, "1 minute ago", TimeAgoFilter(time.Now()))
	assert.Equal(t, "n/a", TimeAgoFilter("n/a"))
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	out := Markdown("# Title\n\n**bold** <script>alert(1)</script>")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")

	var buf bytes.Buffer
	require.NoError(t, MarkdownComponent("_x_").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<em>x</em>")
}
