package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline errors
const (
	// ErrCodeFetchFailed indicates the user fetch collaborator failed.
	ErrCodeFetchFailed ErrorCode = "FETCH_FAILED"
	// ErrCodeTransformFailed indicates a user-supplied transform returned an error or panicked.
	ErrCodeTransformFailed ErrorCode = "TRANSFORM_FAILED"
	// ErrCodeExecutorBusy indicates another pipeline invocation is still running.
	ErrCodeExecutorBusy ErrorCode = "EXECUTOR_BUSY"
	// ErrCodeCanceled indicates the invocation was abandoned through its context.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

// Resource and input errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Transport and internal errors
const (
	// ErrCodeServiceUnavailable indicates the upstream service refused to serve the request.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeRateLimited indicates the caller sent requests faster than allowed.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
