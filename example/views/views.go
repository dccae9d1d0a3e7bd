// Package views renders the blog pages.
package views

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/awesome/pkg/orm"
	"github.com/dmitrymomot/awesome/pkg/paging"
	"github.com/dmitrymomot/awesome/pkg/view"
)

// Template names.
const (
	Blogs    = "blogs.html"
	Blog     = "blog.html"
	Register = "register.html"
)

// New returns the template registry for the blog.
func New() *view.Registry {
	return view.New(
		view.WithTemplate(Blogs, blogs),
		view.WithTemplate(Blog, blog),
		view.WithTemplate(Register, register),
	)
}

func blogs(data map[string]any, filters view.Filters) templ.Component {
	items, _ := data["blogs"].([]*orm.Instance)
	page, _ := data["page"].(paging.Page)

	list := make([]templ.Component, 0, len(items))
	for _, b := range items {
		list = append(list, view.Element("article", nil,
			view.Element("h2", nil,
				view.Element("a", templ.Attributes{"href": "/blog/" + str(b.Value("id"))}, view.Text(str(b.Value("name")))),
			),
			view.Element("p", templ.Attributes{"class": "meta"},
				view.Textf("by %s, %s", str(b.Value("user_name")), filters.Apply("datetime", b.Value("created_at"))),
			),
			view.Element("p", nil, view.Text(str(b.Value("summary")))),
		))
	}
	if len(list) == 0 {
		list = append(list, view.Element("p", nil, view.Text("No blogs yet.")))
	}

	return view.Page("Awesome",
		view.Element("h1", nil, view.Text("Awesome")),
		view.Element("section", nil, list...),
		pager(page),
	)
}

func blog(data map[string]any, filters view.Filters) templ.Component {
	b, _ := data["blog"].(*orm.Instance)
	comments, _ := data["comments"].([]*orm.Instance)
	if b == nil {
		return view.Page("Not found", view.Element("p", nil, view.Text("Blog not found.")))
	}

	list := make([]templ.Component, 0, len(comments))
	for _, c := range comments {
		list = append(list, view.Element("li", nil,
			view.Element("p", templ.Attributes{"class": "meta"},
				view.Textf("%s, %s", str(c.Value("user_name")), filters.Apply("datetime", c.Value("created_at"))),
			),
			templ.Raw(filters.Apply("markdown", str(c.Value("content")))),
		))
	}

	return view.Page(str(b.Value("name")),
		view.Element("h1", nil, view.Text(str(b.Value("name")))),
		view.Element("p", templ.Attributes{"class": "meta"},
			view.Textf("by %s, %s", str(b.Value("user_name")), filters.Apply("datetime", b.Value("created_at"))),
		),
		view.Element("div", templ.Attributes{"class": "content"},
			templ.Raw(filters.Apply("markdown", str(b.Value("content")))),
		),
		view.Element("h3", nil, view.Textf("%d comments", len(comments))),
		view.Element("ul", nil, list...),
	)
}

func register(data map[string]any, _ view.Filters) templ.Component {
	field := func(name, kind string) templ.Component {
		return view.Element("label", nil,
			view.Text(name),
			view.Element("input", templ.Attributes{"name": name, "type": kind}),
		)
	}
	return view.Page("Register",
		view.Element("h1", nil, view.Text("Register")),
		view.Element("form", templ.Attributes{"method": "post", "action": "/api/users"},
			field("name", "text"),
			field("email", "email"),
			field("passwd", "password"),
			view.Element("button", templ.Attributes{"type": "submit"}, view.Text("Register")),
		),
	)
}

func pager(p paging.Page) templ.Component {
	if p.PageCount <= 1 {
		return nil
	}
	var links []templ.Component
	if p.HasPrevious {
		links = append(links, view.Element("a", templ.Attributes{"href": fmt.Sprintf("/?page=%d", p.PageIndex-1)}, view.Text("Previous")))
	}
	links = append(links, view.Textf(" %d / %d ", p.PageIndex, p.PageCount))
	if p.HasNext {
		links = append(links, view.Element("a", templ.Attributes{"href": fmt.Sprintf("/?page=%d", p.PageIndex+1)}, view.Text("Next")))
	}
	return view.Element("nav", nil, links...)
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
