package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

const (
	// TemplateKey names the template to render when present in a result map.
	TemplateKey = "__template__"

	redirectPrefix = "redirect:"

	contentTypeHTML  = "text/html;charset=utf-8"
	contentTypeJSON  = "application/json;charset=utf-8"
	contentTypeText  = "text/plain;charset=utf-8"
	contentTypeBytes = "application/octet-stream"
)

// Data is a convenience alias for response mappings.
type Data = map[string]any

// Status is a status code with an optional text body.
type Status struct {
	Code    int
	Message string
}

// Respond converts an endpoint result into an HTTP response.
//
//   - nil writes 204 No Content unless the response was already written
//   - http.Handler serves the request itself
//   - Component renders as HTML
//   - []byte is sent as application/octet-stream
//   - "redirect:<url>" redirects with 302, other strings are HTML
//   - a map with a "__template__" key renders that template, other maps are JSON
//   - an int in [100, 600) is sent as a bare status code
//   - Status sends the code with its message as text
//   - structs, slices and pointers are JSON; anything else is text
func Respond(c Context, result any) error {
	if c.Written() {
		return nil
	}
	if isNil(result) {
		return c.NoContent(http.StatusNoContent)
	}

	switch r := result.(type) {
	case http.Handler:
		r.ServeHTTP(c.Response(), c.Request())
		return nil
	case Component:
		return c.Render(http.StatusOK, r)
	case []byte:
		return c.Blob(http.StatusOK, contentTypeBytes, r)
	case string:
		if url, ok := strings.CutPrefix(r, redirectPrefix); ok {
			return c.Redirect(http.StatusFound, url)
		}
		return c.Blob(http.StatusOK, contentTypeHTML, []byte(r))
	case map[string]any:
		return respondMap(c, r)
	case int:
		if r >= 100 && r < 600 {
			return c.NoContent(r)
		}
	case Status:
		if r.Code >= 100 && r.Code < 600 {
			return c.Blob(r.Code, contentTypeText, []byte(r.Message))
		}
	case *Status:
		return Respond(c, *r)
	case error:
		return r
	}

	rv := reflect.ValueOf(result)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String && rv.Type().ConvertibleTo(kwargsType) {
			return respondMap(c, rv.Convert(kwargsType).Interface().(map[string]any))
		}
		return respondJSON(c, result)
	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Pointer:
		return respondJSON(c, result)
	}

	return c.Blob(http.StatusOK, contentTypeText, []byte(fmt.Sprint(result)))
}

func respondMap(c Context, m map[string]any) error {
	tmpl, ok := m[TemplateKey]
	if !ok {
		return respondJSON(c, m)
	}
	name, ok := tmpl.(string)
	if !ok {
		return ErrTemplateNameNotString
	}
	return c.RenderTemplate(http.StatusOK, name, m)
}

func respondJSON(c Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("awesome: encode json response: %w", err)
	}
	return c.Blob(http.StatusOK, contentTypeJSON, b)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
