// Package monitor serves the CLI's operational endpoints when enabled:
// /health, /version, /metrics and the /events pipeline event stream.
package monitor
