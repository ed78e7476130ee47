// Package endpoint provides the system routes every server mounts:
// /health, /metrics and /version.
package endpoint
