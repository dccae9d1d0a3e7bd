package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/awesome/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack omits the stack trace.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover turns a handler panic into a 500 HTTPError wrapping a PanicError.
// The panic is logged with its stack unless disabled.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = panicError(c, r, cfg)
				}
			}()

			return next(c)
		}
	}
}

// panicError logs a recovered panic and converts it to a 500 HTTPError.
func panicError(c internal.Context, r any, cfg *RecoverConfig) error {
	pe := &PanicError{Value: r}
	if cfg.DisablePrintStack {
		c.LogError("panic recovered", "panic", r)
	} else {
		stack := make([]byte, cfg.StackSize)
		pe.Stack = stack[:runtime.Stack(stack, false)]
		c.LogError("panic recovered", "panic", r, "stack", string(pe.Stack))
	}

	return internal.ErrInternal("Internal Server Error",
		internal.WithError(pe),
		internal.WithRequestID(GetRequestID(c)),
	)
}
