// Package component manages the lifecycle of the long-running pieces the
// CLI owns: the telemetry exporters and the embedded user API server.
//
// Components start in registration order and stop in reverse order. Their
// health is folded into one observability.ServiceHealth for /health.
package component
