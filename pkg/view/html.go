package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Text writes an escaped string.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Textf writes an escaped formatted string.
func Textf(format string, args ...any) templ.Component {
	return Text(fmt.Sprintf(format, args...))
}

// Element wraps children in an HTML element. Attributes are escaped.
//
//	view.Element("a", templ.Attributes{"href": "/blog/" + id}, view.Text(name))
func Element(tag string, attrs templ.Attributes, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Page renders a minimal HTML document around body.
func Page(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>`+templ.EscapeString(title)+`</title></head>`); err != nil {
			return err
		}
		if err := Element("body", nil, body...).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</html>")
		return err
	})
}
