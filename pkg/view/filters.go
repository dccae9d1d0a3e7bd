package view

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// TimeAgo describes a unix timestamp in seconds relative to now:
// "1 minute ago", "N minutes ago", "N hours ago", "N days ago", or the date
// once it is a week old.
func TimeAgo(ts float64) string {
	return timeAgoAt(ts, time.Now())
}

func timeAgoAt(ts float64, now time.Time) string {
	delta := int64(float64(now.UnixNano())/float64(time.Second) - ts)
	switch {
	case delta < 60:
		return "1 minute ago"
	case delta < 3600:
		return fmt.Sprintf("%d minutes ago", delta/60)
	case delta < 86400:
		return fmt.Sprintf("%d hours ago", delta/3600)
	case delta < 604800:
		return fmt.Sprintf("%d days ago", delta/86400)
	}
	sec := int64(ts)
	t := time.Unix(sec, int64((ts-float64(sec))*float64(time.Second)))
	return t.Format("2006-01-02")
}

// TimeAgoFilter is TimeAgo for template values: numbers are unix seconds,
// time.Time values are used as is.
func TimeAgoFilter(v any) string {
	switch t := v.(type) {
	case float64:
		return TimeAgo(t)
	case float32:
		return TimeAgo(float64(t))
	case int64:
		return TimeAgo(float64(t))
	case int:
		return TimeAgo(float64(t))
	case time.Time:
		return TimeAgo(float64(t.UnixNano()) / float64(time.Second))
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return TimeAgo(f)
		}
	}
	return fmt.Sprint(v)
}

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
	ugcPolicy    *bluemonday.Policy
)

func initMarkdown() {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
		ugcPolicy = bluemonday.UGCPolicy()
	})
}

// Markdown converts user supplied markdown to sanitized HTML.
func Markdown(src string) string {
	initMarkdown()
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return ugcPolicy.Sanitize(templ.EscapeString(src))
	}
	return ugcPolicy.Sanitize(buf.String())
}

// MarkdownFilter renders a template value as markdown.
func MarkdownFilter(v any) string {
	return Markdown(fmt.Sprint(v))
}

// MarkdownComponent renders markdown as a component.
func MarkdownComponent(src string) templ.Component {
	return templ.Raw(Markdown(src))
}
