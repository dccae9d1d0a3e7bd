package internal

// Handler declares routes on a router.
//
// Example:
//
//	type BlogHandler struct {
//	    db *orm.DB
//	}
//
//	func (h *BlogHandler) Routes(r awesome.Router) {
//	    r.GET("/", h.index)
//	    r.GET("/api/blogs/{id}", h.getBlog)
//	    r.POST("/api/blogs", h.createBlog)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the low-level signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handler.
//
// Routes also accept endpoint functions with typed parameters;
// see Analyze for the supported shapes.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next awesome.HandlerFunc) awesome.HandlerFunc {
//	    return func(c awesome.Context) error {
//	        if !isAuthenticated(c) {
//	            return c.Redirect(302, "/signin")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
