package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/middlewares"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?q=1", nil)
	_, logs := serve(t, req, func(c internal.Context) error {
		return c.String(http.StatusAccepted, "ok")
	}, middlewares.Logger())

	assert.Contains(t, logs.String(), `msg="Request: GET /"`)
	assert.Contains(t, logs.String(), "status=202")
	assert.Contains(t, logs.String(), "size=2")
}
