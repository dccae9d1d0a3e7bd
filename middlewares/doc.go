// Package middlewares provides request middleware for awesome applications.
//
//	app := awesome.New(
//		awesome.WithLogger(cfg.Log, "blog", middlewares.RequestIDExtractor()),
//		awesome.WithMiddleware(
//			middlewares.RequestID(),
//			middlewares.Logger(),
//			middlewares.Recover(),
//			middlewares.Timeout(10*time.Second),
//		),
//	)
//
// RequestID keeps an upstream X-Request-ID or X-Correlation-ID header, or
// generates a UUID, and RequestIDExtractor adds it to every log record.
// Logger writes "Request: METHOD path" for each request.
// CORS answers browser preflights and is meant for API route groups.
// Recover and Timeout turn panics and deadlines into HTTP errors that wrap a
// PanicError or TimeoutError, so a custom error handler can tell them apart:
//
//	awesome.WithErrorHandler(func(c awesome.Context, err error) error {
//		if middlewares.IsTimeoutError(err) {
//			return c.String(http.StatusServiceUnavailable, "try again later")
//		}
//		return err
//	})
//
// Register RequestID before the others so their logs carry the ID.
package middlewares
