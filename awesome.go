package awesome

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/pkg/health"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the low-level signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Endpoint is the analyzed signature of an endpoint function.
	Endpoint = internal.Endpoint

	// RouteInfo describes a registered route.
	RouteInfo = internal.RouteInfo

	// Component is the interface for renderable components (templ.Component).
	Component = internal.Component

	// Renderer renders named templates for results carrying a "__template__" key.
	Renderer = internal.Renderer

	// Data is a response mapping.
	Data = internal.Data

	// Status is a status code with a text body.
	Status = internal.Status

	// HTTPError is an error with an HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// APIError is reported to API clients as {"error", "data", "message"}.
	APIError = internal.APIError

	// ResponseWriter tracks the response status and size.
	ResponseWriter = internal.ResponseWriter

	// Extractor reads a value from the first matching request source.
	Extractor = internal.Extractor

	// ExtractorSource reads a value from the request.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// TemplateKey names the template in a result mapping.
const TemplateKey = internal.TemplateKey

// API error codes.
const (
	APICodeValueInvalid  = internal.APICodeValueInvalid
	APICodeValueNotFound = internal.APICodeValueNotFound
	APICodePermission    = internal.APICodePermission
)

// Errors
var (
	ErrInvalidEndpoint        = internal.ErrInvalidEndpoint
	ErrRendererNotConfigured  = internal.ErrRendererNotConfigured
	ErrTemplateNameNotString  = internal.ErrTemplateNameNotString
	ErrUnsupportedContentType = internal.ErrUnsupportedContentType
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := awesome.New(
//	    awesome.WithMiddleware(middlewares.Logger()),
//	    awesome.WithRenderer(views.New()),
//	    awesome.WithHandlers(handlers.New(conn)),
//	)
//
//	err := app.Run(":9000")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Analyze inspects an endpoint function and builds its argument plan.
func Analyze(fn any) (*Endpoint, error) {
	return internal.Analyze(fn)
}

// Respond converts a handler result into an HTTP response.
func Respond(c Context, result any) error {
	return internal.Respond(c, result)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithRenderer sets the template renderer.
func WithRenderer(r Renderer) Option {
	return internal.WithRenderer(r)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed static
//	var assets embed.FS
//
//	awesome.New(
//	    awesome.WithStaticFiles("/static/", assets, "static"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables liveness and readiness endpoints.
//
// Example:
//
//	awesome.WithHealthChecks(
//	    awesome.WithReadinessCheck("mysql", db.Healthcheck(conn)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger from cfg with a component name and optional extractors.
//
// Example:
//
//	awesome.New(
//	    awesome.WithLogger(cfg.Log, "blog", middlewares.RequestIDExtractor()),
//	)
func WithLogger(cfg logger.Config, component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(cfg, component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address overrides the HTTP server address passed to Run.
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server logger. Defaults to the application logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server accepts requests.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// HTTP error constructors and options.
var (
	ErrBadRequest = internal.ErrBadRequest
	ErrForbidden  = internal.ErrForbidden
	ErrNotFound   = internal.ErrNotFound
	ErrInternal   = internal.ErrInternal

	WithErrorCode = internal.WithErrorCode
	WithRequestID = internal.WithRequestID
	WithError     = internal.WithError

	IsHTTPError = internal.IsHTTPError
	AsHTTPError = internal.AsHTTPError
)

// NewAPIError creates an APIError.
func NewAPIError(code, data, message string) *APIError {
	return internal.NewAPIError(code, data, message)
}

// NewValueError reports an invalid input field.
func NewValueError(field, message string) *APIError {
	return internal.NewValueError(field, message)
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(field, message string) *APIError {
	return internal.NewNotFoundError(field, message)
}

// NewPermissionError reports a forbidden operation.
func NewPermissionError(message string) *APIError {
	return internal.NewPermissionError(message)
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	return internal.AsAPIError(err)
}

// Extractors
var (
	NewExtractor = internal.NewExtractor
	FromHeader   = internal.FromHeader
	FromQuery    = internal.FromQuery
	FromParam    = internal.FromParam
)

// Typed helpers

// ContextValue returns the value stored under key, or the zero value of T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed path parameter.
func Param[T internal.Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// ParamDefault returns a typed path parameter or defaultValue.
func ParamDefault[T internal.Scalar](c Context, name string, defaultValue T) T {
	return internal.ParamDefault(c, name, defaultValue)
}

// Query returns a typed query parameter.
func Query[T internal.Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter or defaultValue.
func QueryDefault[T internal.Scalar](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}
