package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldService      = "service"
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldInvocationID = "invocation_id"
	FieldPipeline     = "pipeline"
	FieldUserID       = "user_id"
	FieldState        = "state"
	FieldOutcome      = "outcome"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("pipeline", "mergeMap", "values", 3))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a pipeline that failed.
func ErrorFields(pipeline string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldPipeline: pipeline,
		FieldError:    err.Error(),
	}
}

// DurationFields creates fields for a timed pipeline run.
func DurationFields(pipeline string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldPipeline: pipeline,
		FieldDuration: d.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
