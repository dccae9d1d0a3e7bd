// Package awesome is a small web framework that binds HTTP requests to plain
// Go functions.
//
// Routes accept either a [HandlerFunc] or an endpoint function whose
// parameters describe the arguments it needs. Arguments come from the JSON or
// form body of POST, PUT and PATCH requests, from the query string of other
// requests, and from path parameters, which always win:
//
//	type registerInput struct {
//	    Email  string `param:"email,required"`
//	    Name   string `param:"name,required"`
//	    Passwd string `param:"passwd,required"`
//	}
//
//	func (h *Handler) Routes(r awesome.Router) {
//	    r.GET("/", h.index)
//	    r.GET("/api/blogs/{id}", h.getBlog)
//	    r.POST("/api/users", h.register)
//	}
//
//	func (h *Handler) register(c awesome.Context, in registerInput) (any, error) {
//	    if !emailRe.MatchString(in.Email) {
//	        return nil, awesome.NewValueError("email", "Invalid email.")
//	    }
//	    ...
//	}
//
// A missing required argument answers 400 "Missing argument: <name>". A
// map[string]any parameter, or a map field tagged param:"*", receives every
// extracted argument.
//
// # Results
//
// The returned value is converted by [Respond]: strings are HTML, except
// "redirect:<url>" which redirects; mappings are JSON unless they carry a
// "__template__" key naming a template for the configured [Renderer]; ints
// are status codes; structs and slices are JSON. An [APIError] is sent as
// {"error", "data", "message"} JSON; other errors go to the error handler.
//
// # Running
//
//	app := awesome.New(
//	    awesome.WithLogger(cfg.Log, "blog", middlewares.RequestIDExtractor()),
//	    awesome.WithMiddleware(middlewares.RequestID(), middlewares.Logger()),
//	    awesome.WithRenderer(views.New()),
//	    awesome.WithHandlers(handlers.New(conn)),
//	)
//
//	err := app.Run(cfg.Server.Addr, awesome.ShutdownHook(db.Shutdown(conn)))
//
// The server shuts down gracefully on SIGINT and SIGTERM.
package awesome
