// Package view renders named templ components for handlers that return a
// mapping with a template name.
//
// Templates are registered by name and receive the handler's data together
// with the registry filters:
//
//	reg := view.New(
//		view.WithTemplate("blogs.html", func(data map[string]any, f view.Filters) templ.Component {
//			return view.Page("Blogs", view.Text(f.Apply("datetime", data["created_at"])))
//		}),
//	)
//	app := awesome.New(awesome.WithRenderer(reg))
//
// The preset filters are "datetime" (TimeAgo) and "markdown" (Markdown,
// rendered with goldmark and sanitized with bluemonday).
package view
