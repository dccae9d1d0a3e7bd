package health

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// LivenessHandler reports OK for as long as the process serves requests.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on every request.
// Any failing check turns the response into 503 Service Unavailable.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)

		code := http.StatusOK
		if resp.Status != StatusHealthy {
			code = http.StatusServiceUnavailable
		}
		write(w, r, code, resp)
	}
}

// write sends resp as JSON when the client asks for it with ?format=json or
// an Accept header. The plain text body names every failing check.
func write(w http.ResponseWriter, r *http.Request, code int, resp *Response) {
	w.Header().Set("Cache-Control", "no-store")

	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if code == http.StatusOK {
		_, _ = io.WriteString(w, "OK")
		return
	}

	_, _ = io.WriteString(w, http.StatusText(code))
	for _, name := range slices.Sorted(maps.Keys(resp.Checks)) {
		if check := resp.Checks[name]; check.Status != StatusHealthy {
			_, _ = fmt.Fprintf(w, "\n%s: %s", name, check.Error)
		}
	}
}
