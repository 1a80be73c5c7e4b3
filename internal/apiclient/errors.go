package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindServer       Kind = "server"
	KindTransport    Kind = "transport"
	KindUnknown      Kind = "unknown"
)

// Sentinels usable with errors.Is against any *APIError of the same kind.
var (
	ErrValidation   = errors.New("backend rejected the request")
	ErrUnauthorized = errors.New("backend authentication required")
	ErrForbidden    = errors.New("backend access denied")
	ErrNotFound     = errors.New("backend resource not found")
	ErrConflict     = errors.New("backend conflict")
	ErrServer       = errors.New("backend server error")
	ErrTransport    = errors.New("backend unreachable")
	ErrUnknown      = errors.New("backend request failed")
)

var kindSentinels = map[Kind]error{
	KindValidation:   ErrValidation,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
	KindNotFound:     ErrNotFound,
	KindConflict:     ErrConflict,
	KindServer:       ErrServer,
	KindTransport:    ErrTransport,
	KindUnknown:      ErrUnknown,
}

// ErrorBody is the error payload the backend returns with non-2xx responses.
type ErrorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

// APIError is a failed backend call. StatusCode is 0 when no response arrived.
type APIError struct {
	StatusCode int
	Kind       Kind
	Message    string
	Fields     map[string]string
	Method     string
	Path       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Temporary reports whether repeating the call may succeed.
func (e *APIError) Temporary() bool {
	switch e.Kind {
	case KindTransport, KindServer:
		return true
	}
	return e.StatusCode == http.StatusTooManyRequests
}

// KindForStatus maps an HTTP status to an error kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// decodeError builds an APIError from a non-2xx response body. Bodies that
// do not match ErrorBody fall back to the status text.
func decodeError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Kind:       KindForStatus(status),
		Message:    http.StatusText(status),
		Method:     method,
		Path:       path,
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("status %d", status)
	}

	var eb ErrorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil {
		return apiErr
	}

	switch {
	case eb.Message != "":
		apiErr.Message = eb.Message
	case eb.Error != "":
		apiErr.Message = eb.Error
	}

	if len(eb.Details) > 0 {
		var fields map[string]string
		if json.Unmarshal(eb.Details, &fields) == nil && len(fields) > 0 {
			apiErr.Fields = fields
		}
	}
	return apiErr
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
