package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrNetwork matches every *NetworkError via errors.Is.
var ErrNetwork = errors.New("network error")

// NetworkError means the server could not be reached or the exchange was cut
// short: DNS failure, refused connection, reset, or timeout.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("NetworkError: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is lets callers test errors.Is(err, ErrNetwork).
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// Timeout reports whether the request ran out of time.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// HTTPError is a non-2xx response. Message is taken from the body when the
// server supplied one.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func (e *HTTPError) Forbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

func (e *HTTPError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *HTTPError) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

func (e *HTTPError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// AsHTTPError unwraps err into an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsUnauthorized reports a 401 anywhere in err's chain.
func IsUnauthorized(err error) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.Unauthorized()
}

// parseError builds an HTTPError. The message is, in order: a string "error"
// field, the "message" of an object "error" field, a top-level "message", or
// "HTTP error: <status>".
func parseError(statusCode int, body []byte) *HTTPError {
	e := &HTTPError{
		StatusCode: statusCode,
		Body:       body,
	}

	var payload map[string]json.RawMessage
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		if raw, ok := payload["error"]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				e.Message = s
				return e
			}

			var obj struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			if json.Unmarshal(raw, &obj) == nil {
				e.Code = obj.Code
				if obj.Message != "" {
					e.Message = obj.Message
					return e
				}
			}
		}

		if raw, ok := payload["message"]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				e.Message = s
				return e
			}
		}
	}

	e.Message = fmt.Sprintf("HTTP error: %d", statusCode)
	return e
}
