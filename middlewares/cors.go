package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/awesome/internal"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists exact origins such as "https://blog.example.com",
	// patterns with one leading wildcard label such as "https://*.example.com",
	// or "*" for any origin.
	AllowOrigins []string
	// AllowOriginFunc replaces AllowOrigins when set.
	AllowOriginFunc func(origin string) bool

	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string

	// AllowCredentials makes the middleware echo the origin instead of "*".
	AllowCredentials bool
	// MaxAge is how long browsers may cache a preflight answer.
	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the allowed origins. Empty values are ignored.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		origins = slices.DeleteFunc(slices.Clone(origins), func(o string) bool {
			return strings.TrimSpace(o) == ""
		})
		if len(origins) > 0 {
			cfg.AllowOrigins = origins
		}
	}
}

// WithAllowOriginFunc sets a dynamic origin check.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOriginFunc = fn
	}
}

// WithAllowHeaders sets the request headers a preflight may ask for.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the response headers readable by scripts.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithAllowCredentials allows cookies on cross-origin requests.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowCredentials = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = d
	}
}

// CORS answers preflight requests with 204 No Content and adds
// Access-Control headers to cross-origin requests from allowed origins.
// Requests from other origins pass through untouched and the browser blocks
// them. Without options every origin may use the JSON API:
//
//	r.Route("/api", func(r awesome.Router) {
//		r.Use(middlewares.CORS(middlewares.WithExposeHeaders(middlewares.RequestIDHeader)))
//	})
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete,
		},
		AllowHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	p := newCORSPolicy(cfg)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !p.allows(origin) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Origin", p.allowOrigin(origin))
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if p.expose != "" {
				h.Set("Access-Control-Expose-Headers", p.expose)
			}

			// A bare OPTIONS request is an ordinary request.
			if c.Request().Method != http.MethodOptions || c.Header("Access-Control-Request-Method") == "" {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", p.methods)
			h.Set("Access-Control-Allow-Headers", p.headers)
			if p.maxAge != "" {
				h.Set("Access-Control-Max-Age", p.maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}

// corsPolicy is a CORSConfig with its header values precomputed.
type corsPolicy struct {
	match    func(origin string) bool
	wildcard bool
	echo     bool
	methods  string
	headers  string
	expose   string
	maxAge   string
}

func newCORSPolicy(cfg *CORSConfig) *corsPolicy {
	p := &corsPolicy{
		wildcard: cfg.AllowOriginFunc == nil && slices.Contains(cfg.AllowOrigins, "*"),
		methods:  strings.Join(append(slices.Clone(cfg.AllowMethods), http.MethodOptions), ", "),
		headers:  strings.Join(cfg.AllowHeaders, ", "),
		expose:   strings.Join(cfg.ExposeHeaders, ", "),
	}
	p.echo = cfg.AllowCredentials || !p.wildcard
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}

	switch {
	case cfg.AllowOriginFunc != nil:
		p.match = cfg.AllowOriginFunc
	case p.wildcard:
		p.match = func(string) bool { return true }
	default:
		patterns := slices.Clone(cfg.AllowOrigins)
		p.match = func(origin string) bool {
			return slices.ContainsFunc(patterns, func(pattern string) bool {
				return matchOrigin(pattern, origin)
			})
		}
	}
	return p
}

func (p *corsPolicy) allows(origin string) bool {
	return p.match(origin)
}

func (p *corsPolicy) allowOrigin(origin string) string {
	if p.echo {
		return origin
	}
	return "*"
}

// matchOrigin compares origin with pattern case-insensitively.
// "https://*.example.com" matches any subdomain but not example.com itself.
func matchOrigin(pattern, origin string) bool {
	pattern, origin = strings.ToLower(pattern), strings.ToLower(origin)
	scheme, host, ok := strings.Cut(pattern, "://*.")
	if !ok {
		return pattern == origin
	}
	prefix := scheme + "://"
	if !strings.HasPrefix(origin, prefix) {
		return false
	}
	sub, found := strings.CutSuffix(strings.TrimPrefix(origin, prefix), "."+host)
	return found && sub != "" && !strings.ContainsAny(sub, "/:")
}
