package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the request deadline passed.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeCanceled indicates the caller canceled the request.
	ErrCodeCanceled
	// ErrCodeConnection indicates a connection failure (refused, DNS, reset).
	ErrCodeConnection
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates any other 4xx, or a request that could not be built.
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified HTTP client error.
type Error struct {
	// StatusCode is the HTTP status code (0 for transport-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error. For error responses it is the server's
	// own message when the body carries one.
	Message string
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// classifyTransport turns a failed round trip into a typed error. ctxErr is
// the request context's error at the time of failure.
func classifyTransport(err, ctxErr error) *Error {
	code := ErrCodeConnection
	switch {
	case errors.Is(ctxErr, context.Canceled):
		code = ErrCodeCanceled
	case errors.Is(ctxErr, context.DeadlineExceeded), isTimeout(err):
		code = ErrCodeTimeout
	}
	return &Error{Code: code, Message: err.Error(), Err: err}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	var code ErrorCode
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusNotFound:
		code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		code = ErrCodeRateLimit
	case statusCode >= 400 && statusCode < 500:
		code = ErrCodeValidation
	default:
		code = ErrCodeServer
	}
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    bodyMessage(statusCode, body),
		Body:       body,
	}
}

// bodyMessage extracts {"error":{"message":...}} from an error response,
// falling back to the status text.
func bodyMessage(statusCode int, body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// CodeOf returns the classification of err and whether err is an *Error.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return is(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a cancellation.
func IsCanceled(err error) bool { return is(err, ErrCodeCanceled) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return is(err, ErrCodeConnection) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return is(err, ErrCodeNotFound) }

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool { return is(err, ErrCodeServer) }

func is(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
