// Package errors provides the structured error type shared by the pipeline
// engine, the fetch collaborator and the mock user service.
//
// Every terminal failure travels through a stream's error channel as an
// *AppError so that callers can branch on the code (FETCH_FAILED,
// TRANSFORM_FAILED, ...) while the Message keeps the precise text of the
// underlying failure.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Pipeline error constructors ---

// FetchFailed wraps a failed user fetch. The message is the cause's own text
// so reports show exactly what the network layer said.
func FetchFailed(id int, cause error) *AppError {
	msg := "fetch failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeFetchFailed, Message: msg,
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"id": id}, Cause: cause,
	}
}

// TransformFailed wraps an error returned (or a panic raised) by a
// user-supplied function inside the named operator.
func TransformFailed(operator string, cause error) *AppError {
	msg := "transform failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeTransformFailed, Message: msg,
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"operator": operator}, Cause: cause,
	}
}

// ExecutorBusy reports that the named pipeline could not start because
// another invocation holds the running slot.
func ExecutorBusy(running string) *AppError {
	return &AppError{
		Code: ErrCodeExecutorBusy, Message: fmt.Sprintf("pipeline %q is still running", running),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"running": running},
	}
}

// Canceled wraps a context error that ended an invocation before its stream settled.
func Canceled(cause error) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: "invocation canceled",
		HTTPStatus: 499, Cause: cause,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %s not found", resource, id),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates a new AppError for struct validation failures.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ServiceUnavailable creates a new AppError for a deliberately refused request.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("%s is unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"service": service},
	}
}

// RateLimited creates a new AppError for a request refused by a rate limiter.
func RateLimited(limiter string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
		Details:    map[string]any{"limiter": limiter},
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// --- Inspection helpers ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Code returns the code of the outermost AppError in err's chain, or "".
func Code(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && Code(err) == code
}

// Message returns the human-readable text of err: the AppError message when
// present, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
