package middlewares

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/awesome/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout bounds request handling. The request context gets the deadline,
// so database calls made with the handler's Context are cancelled too.
//
// The handler writes into a buffer that is copied to the client only when it
// finishes in time. When the deadline passes first, the buffer is discarded
// and a 503 HTTPError wrapping a TimeoutError is returned. A panic in the
// handler becomes a 500 HTTPError wrapping a PanicError.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	recoverCfg := &RecoverConfig{StackSize: DefaultStackSize}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			tw := &timeoutWriter{header: make(http.Header)}
			tc := c.WithResponse(tw)

			done := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- panicError(tc, r, recoverCfg)
					}
				}()
				done <- next(tc)
			}()

			select {
			case err := <-done:
				if IsPanicError(err) {
					return err
				}
				if ferr := tw.flushTo(c.Response()); ferr != nil {
					return errors.Join(err, ferr)
				}
				return err
			case <-ctx.Done():
				tw.expire()
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return ctx.Err()
				}
				c.LogWarn("request timeout", "timeout", timeout.String())
				return internal.NewHTTPError(http.StatusServiceUnavailable, "Request Timeout",
					internal.WithError(&TimeoutError{Duration: timeout}),
					internal.WithRequestID(GetRequestID(c)),
				)
			}
		}
	}
}

// timeoutWriter buffers a response until the handler finishes.
// Writes after expire fail with http.ErrHandlerTimeout.
type timeoutWriter struct {
	mu      sync.Mutex
	header  http.Header
	buf     bytes.Buffer
	code    int
	expired bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired || tw.code != 0 {
		return
	}
	tw.code = code
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired {
		return 0, http.ErrHandlerTimeout
	}
	if tw.code == 0 {
		tw.code = http.StatusOK
	}
	return tw.buf.Write(b)
}

func (tw *timeoutWriter) expire() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.expired = true
}

// flushTo copies the buffered response to w. Nothing is written when the
// handler produced no response.
func (tw *timeoutWriter) flushTo(w http.ResponseWriter) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.expired = true
	if tw.code == 0 {
		return nil
	}
	maps.Copy(w.Header(), tw.header)
	w.WriteHeader(tw.code)
	_, err := w.Write(tw.buf.Bytes())
	return err
}
