package internal

import (
	"errors"
	"net/http"
)

// Sentinel errors for the dispatcher.
var (
	ErrInvalidEndpoint        = errors.New("awesome: invalid endpoint function")
	ErrRendererNotConfigured  = errors.New("awesome: template renderer not configured")
	ErrTemplateNameNotString  = errors.New("awesome: template name must be a string")
	ErrUnsupportedContentType = errors.New("awesome: unsupported content type")
)

// HTTPError represents an HTTP error with all data needed for rendering.
// It implements the error interface and provides structured data for
// error handlers to render error pages.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// ErrorCode is an application-specific error code.
	ErrorCode string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError returns true if the error chain contains an HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// AsHTTPError extracts the HTTPError from an error chain if present.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// API error codes.
const (
	APICodeValueInvalid  = "value:invalid"
	APICodeValueNotFound = "value:notfound"
	APICodePermission    = "permission:forbidden"
)

// APIError is an application-level failure reported to API clients as a
// JSON object with "error", "data" and "message" keys.
// Endpoints return it like any other error; the dispatcher turns it into a
// regular response instead of passing it to the error handler.
type APIError struct {
	// Code is the machine readable error, e.g. "value:invalid".
	Code string `json:"error"`
	// Data usually names the offending input field or resource.
	Data string `json:"data"`
	// Message is the human readable explanation.
	Message string `json:"message"`
}

// NewAPIError creates a generic APIError.
func NewAPIError(code, data, message string) *APIError {
	return &APIError{Code: code, Data: data, Message: message}
}

// NewValueError reports an invalid input value. Data holds the field name.
func NewValueError(field, message string) *APIError {
	return NewAPIError(APICodeValueInvalid, field, message)
}

// NewNotFoundError reports a missing resource. Data holds the resource name.
func NewNotFoundError(field, message string) *APIError {
	return NewAPIError(APICodeValueNotFound, field, message)
}

// NewPermissionError reports a forbidden operation.
func NewPermissionError(message string) *APIError {
	return NewAPIError(APICodePermission, "permission", message)
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// Payload returns the mapping sent to the client.
func (e *APIError) Payload() map[string]any {
	return map[string]any{
		"error":   e.Code,
		"data":    e.Data,
		"message": e.Message,
	}
}

// AsAPIError extracts the APIError from an error chain if present.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
