package middlewares_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("handler finishes in time", func(t *testing.T) {
		t.Parallel()

		rec, _ := serve(t, nil, func(c internal.Context) error {
			_, ok := c.Deadline()
			assert.True(t, ok, "request context carries the deadline")
			return c.String(http.StatusOK, "done")
		}, middlewares.Timeout(time.Second))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "done", rec.Body.String())
	})

	t.Run("slow handler times out", func(t *testing.T) {
		t.Parallel()

		var handled error
		app := internal.New(
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				handled = err
				return c.String(http.StatusServiceUnavailable, "timeout")
			}),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/", func(c internal.Context) error {
					<-c.Done()
					return nil
				}, middlewares.Timeout(20*time.Millisecond))
			})),
		)

		rec := httptestGet(t, app, "/")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		require.True(t, middlewares.IsTimeoutError(handled))
		te, ok := middlewares.AsTimeoutError(handled)
		require.True(t, ok)
		assert.Equal(t, 20*time.Millisecond, te.Duration)
	})
}

func TestTimeout_Default(t *testing.T) {
	t.Parallel()

	rec, _ := serve(t, nil, func(c internal.Context) error {
		deadline, ok := c.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(middlewares.DefaultTimeout), deadline, time.Second)
		return nil
	}, middlewares.Timeout(0))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTimeout_PanicInHandler(t *testing.T) {
	t.Parallel()

	rec, logs := serve(t, nil, func(c internal.Context) error {
		panic("boom")
	}, middlewares.Recover(), middlewares.Timeout(time.Second))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error\n", rec.Body.String())
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "panic=boom")
}

func TestTimeout_PanicAfterPartialWrite(t *testing.T) {
	t.Parallel()

	rec, _ := serve(t, nil, func(c internal.Context) error {
		_, _ = c.Response().Write([]byte("half"))
		panic("boom")
	}, middlewares.Timeout(time.Second))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "half")
}

func TestTimeout_LateWriteIsDropped(t *testing.T) {
	t.Parallel()

	finished := make(chan error, 1)
	rec, _ := serve(t, nil, func(c internal.Context) error {
		<-c.Done()
		time.Sleep(10 * time.Millisecond)
		err := c.String(http.StatusOK, "late body")
		finished <- err
		return err
	}, middlewares.Timeout(5*time.Millisecond))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Request Timeout\n", rec.Body.String())

	select {
	case err := <-finished:
		assert.ErrorIs(t, err, http.ErrHandlerTimeout)
	case <-time.After(time.Second):
		t.Fatal("handler did not finish")
	}
	assert.NotContains(t, rec.Body.String(), "late body")
}

func TestTimeout_CopiesHeadersAndStatus(t *testing.T) {
	t.Parallel()

	rec, _ := serve(t, nil, func(c internal.Context) error {
		c.SetHeader("X-Blog", "42")
		return c.String(http.StatusCreated, "created")
	}, middlewares.RequestID(), middlewares.Timeout(time.Second))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "created", rec.Body.String())
	assert.Equal(t, "42", rec.Header().Get("X-Blog"))
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))
}
