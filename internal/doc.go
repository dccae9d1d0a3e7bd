// Package internal provides the core types and implementation for the awesome framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/awesome"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates HTTP routing, middleware, rendering and graceful shutdown
//   - Context: Provides request/response access and helper methods
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Low-level signature for route handlers that return errors
//   - Endpoint: Analyzed signature of a function whose arguments are bound from the request
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - APIError: Application error reported to API clients as a JSON mapping
//
// # Endpoint Functions
//
// Routes accept plain functions. Their parameters are bound from the JSON or
// form body (POST, PUT, PATCH), the query string (other methods) and the path:
//
//	type blogsInput struct {
//	    Page string `param:"page" default:"1"`
//	}
//
//	func (h *Handler) Routes(r awesome.Router) {
//	    r.GET("/api/blogs", h.apiBlogs)
//	    r.GET("/api/blogs/{id}", h.apiGetBlog)
//	}
//
//	func (h *Handler) apiBlogs(c awesome.Context, in blogsInput) (awesome.Data, error)
//
// # Response Coercion
//
// Endpoint results are converted by Respond: strings become HTML,
// "redirect:/path" redirects, maps become JSON or render the template named by
// their "__template__" key, byte slices are sent as binary, and integers are
// sent as bare status codes.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Handler) apiGetBlog(c awesome.Context, in struct{ ID string }) (any, error) {
//	    return models.Blog.Find(c, h.db, in.ID)
//	}
package internal
