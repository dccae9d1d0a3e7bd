package internal

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Default memory limit for multipart form parsing.
const defaultMultipartMemory = 32 << 20

// ExtractorSource extracts a value from the request context.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Header(name)
		return v, v != ""
	}
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Query(name)
		return v, v != ""
	}
}

// FromParam returns a source that reads from a URL parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Param(name)
		return v, v != ""
	}
}

// hasBody reports whether arguments for the method are read from the request body.
func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// extractBody reads keyword arguments from a JSON object or form body.
// Returns nil when the body yields no arguments source.
func extractBody(c Context) (map[string]any, error) {
	r := c.Request()
	raw := r.Header.Get("Content-Type")
	if raw == "" {
		return nil, ErrBadRequest("Missing Content-Type")
	}
	ct, _, err := mime.ParseMediaType(raw)
	if err != nil {
		ct = strings.ToLower(strings.TrimSpace(raw))
	}

	switch {
	case strings.HasPrefix(ct, "application/json"):
		var body any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, ErrBadRequest("Invalid JSON body", WithError(err))
		}
		kw, ok := body.(map[string]any)
		if !ok {
			return nil, ErrBadRequest("JSON body must be object.")
		}
		return kw, nil

	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"),
		strings.HasPrefix(ct, "multipart/form-data"):
		if strings.HasPrefix(ct, "multipart/") {
			err = r.ParseMultipartForm(defaultMultipartMemory)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return nil, ErrBadRequest("Invalid form body", WithError(err))
		}
		kw := make(map[string]any, len(r.PostForm))
		for k, v := range r.PostForm {
			if len(v) > 0 {
				kw[k] = v[0]
			}
		}
		return kw, nil
	}

	return nil, ErrBadRequest(fmt.Sprintf("Unsupported Content-Type: %s", raw), WithError(ErrUnsupportedContentType))
}

// extractQuery reads keyword arguments from the query string, first value per key.
// Returns nil when the query string is empty.
func extractQuery(c Context) map[string]any {
	r := c.Request()
	if r.URL.RawQuery == "" {
		return nil
	}
	q := r.URL.Query()
	kw := make(map[string]any, len(q))
	for k, v := range q {
		if len(v) > 0 {
			kw[k] = v[0]
		}
	}
	return kw
}
