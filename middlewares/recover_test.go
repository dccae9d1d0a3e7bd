package middlewares_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes a 500", func(t *testing.T) {
		t.Parallel()

		rec, logs := serve(t, nil, func(c internal.Context) error {
			panic("boom")
		}, middlewares.Recover())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, logs.String(), "panic recovered")
		assert.Contains(t, logs.String(), "stack=")
	})

	t.Run("route level error carries the panic", func(t *testing.T) {
		t.Parallel()

		var handled error
		app := internal.New(
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				handled = err
				return c.String(http.StatusInternalServerError, "oops")
			}),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/", func(c internal.Context) error {
					panic(errors.New("bad state"))
				}, middlewares.Recover(middlewares.WithRecoverDisablePrintStack()))
			})),
		)

		rec := httptestGet(t, app, "/")
		assert.Equal(t, "oops", rec.Body.String())

		require.True(t, middlewares.IsPanicError(handled))
		pe, ok := middlewares.AsPanicError(handled)
		require.True(t, ok)
		assert.Nil(t, pe.Stack)
		assert.EqualError(t, pe, "panic: bad state")

		he, ok := internal.AsHTTPError(handled)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, he.Code)
	})

	t.Run("passes through without panic", func(t *testing.T) {
		t.Parallel()

		rec, _ := serve(t, nil, func(c internal.Context) error {
			return c.String(http.StatusOK, "ok")
		}, middlewares.Recover())
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}

func TestPanicErrorHelpers(t *testing.T) {
	t.Parallel()

	assert.False(t, middlewares.IsPanicError(http.ErrNoCookie))
	_, ok := middlewares.AsPanicError(http.ErrNoCookie)
	assert.False(t, ok)
}

func TestPanicError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	assert.ErrorIs(t, &middlewares.PanicError{Value: cause}, cause)
	assert.NoError(t, (&middlewares.PanicError{Value: "text"}).Unwrap())
}
