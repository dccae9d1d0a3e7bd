package middlewares

import (
	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/pkg/id"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Extractor finds an upstream ID. Defaults to the X-Request-ID and
	// X-Correlation-ID headers.
	Extractor internal.Extractor
	// Generator creates an ID when none is found. Defaults to a random UUID.
	Generator func() string
	// ResponseHeader echoes the ID back to the client.
	ResponseHeader string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDSources replaces the sources checked for an upstream ID.
func WithRequestIDSources(sources ...internal.ExtractorSource) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Extractor = internal.NewExtractor(sources...)
	}
}

// WithRequestIDGenerator sets the ID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header name.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.ResponseHeader = header
	}
}

// RequestID assigns an ID to each request, stores it in the request context
// and sets it as a response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Extractor: internal.NewExtractor(
			internal.FromHeader(RequestIDHeader),
			internal.FromHeader("X-Correlation-ID"),
		),
		Generator:      id.New,
		ResponseHeader: RequestIDHeader,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID, ok := cfg.Extractor.Extract(c)
			if !ok {
				reqID = cfg.Generator()
			}

			c.Set(requestIDKey{}, reqID)
			if cfg.ResponseHeader != "" {
				c.SetHeader(cfg.ResponseHeader, reqID)
			}
			return next(c)
		}
	}
}

// GetRequestID returns the request ID, or an empty string.
func GetRequestID(c internal.Context) string {
	if v, ok := c.Get(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds "request_id" to log records of the request.
//
//	awesome.WithLogger(cfg, "blog", middlewares.RequestIDExtractor())
func RequestIDExtractor() logger.ContextExtractor {
	return logger.FromContext("request_id", requestIDKey{})
}
