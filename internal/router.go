package internal

import (
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Router is the interface handlers use to declare routes.
// It provides HTTP method routing and grouping capabilities.
//
// Route targets are either a HandlerFunc or an endpoint function whose
// arguments are bound from the request (see Endpoint). Registering an
// invalid endpoint function panics.
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, fn any, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, fn any, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, fn any, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, fn any, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, fn any, mw ...Middleware)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, fn any, mw ...Middleware)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, fn any, mw ...Middleware)

	// Group creates an inline route group.
	// All routes defined inside fn share no common pattern prefix.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	// All routes defined inside fn share the pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the router's middleware stack.
	Use(mw ...Middleware)

	// Mount attaches an http.Handler at the given pattern.
	// Use this for legacy handlers or third-party routers.
	Mount(pattern string, h http.Handler)
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	Handler   string `json:"handler"`
	Signature string `json:"signature"`
}

// routerAdapter wraps chi.Router to implement the Router interface.
type routerAdapter struct {
	router chi.Router
	app    *App
	prefix string
}

func (r *routerAdapter) GET(path string, fn any, mw ...Middleware) {
	r.handle(http.MethodGet, path, fn, mw)
}

func (r *routerAdapter) POST(path string, fn any, mw ...Middleware) {
	r.handle(http.MethodPost, path, fn, mw)
}

func (r *routerAdapter) PUT(path string, fn any, mw ...Middleware) {
	r.handle(http.MethodPut, path, fn, mw)
}

func (r *routerAdapter) PATCH(path string, fn any, mw ...Middleware) {
	r.handle(http.MethodPatch, path, fn, mw)
}

func (r *routerAdapter) DELETE(path string, fn any, mw ...Middleware) {
	r.handle(http.MethodDelete, path, fn, mw)
}

func (r *routerAdapter) HEAD(path string, fn any, mw ...Middleware) {
	r.handle(http.MethodHead, path, fn, mw)
}

func (r *routerAdapter) OPTIONS(path string, fn any, mw ...Middleware) {
	r.handle(http.MethodOptions, path, fn, mw)
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: r.prefix})
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: joinPath(r.prefix, pattern)})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.router.Use(r.app.adaptMiddleware(m))
	}
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.router.Mount(pattern, h)
}

// handle analyzes fn, logs and records the route, and registers it on chi.
func (r *routerAdapter) handle(method, pattern string, fn any, mw []Middleware) {
	h, e, err := toHandlerFunc(fn)
	if err != nil {
		panic(err)
	}

	info := RouteInfo{Method: method, Path: joinPath(r.prefix, pattern)}
	if e != nil {
		info.Handler = e.Name()
		info.Signature = e.Signature()
	} else {
		info.Handler = "HandlerFunc"
		info.Signature = "c"
	}
	r.app.logger.Info("add route "+method+" "+info.Path+" => "+info.Handler+"("+info.Signature+")",
		"method", method,
		"path", info.Path,
	)
	r.app.routes = append(r.app.routes, info)

	r.router.MethodFunc(method, pattern, r.wrap(h, mw...))
}

func (r *routerAdapter) wrap(h HandlerFunc, mw ...Middleware) http.HandlerFunc {
	// Apply route-specific middleware in reverse order (last registered = first executed)
	mw = slices.Clone(mw)
	slices.Reverse(mw)
	for _, m := range mw {
		h = m(h)
	}
	return r.app.wrapHandler(h)
}

// adaptMiddleware converts a Middleware to chi middleware.
// This adapter allows middleware to be written using the Context interface
// while satisfying chi's http.Handler-based middleware signature.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a)
			// Values stored by the middleware travel with the request.
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			if err := mw(nextFunc)(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

func joinPath(prefix, pattern string) string {
	if prefix == "" {
		return pattern
	}
	joined := path.Join(prefix, pattern)
	if strings.HasSuffix(pattern, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
