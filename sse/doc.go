// Package sse streams pipeline events to HTTP clients as Server-Sent Events.
//
// A Reporter plugged into the executor publishes every Value, Completed,
// Failed and Ended event to a Hub; Handler serves the hub on a gin route,
// optionally filtered by a pipeline-name glob:
//
//	GET /events?pipeline=demoMerge*
//
// Slow clients lose events rather than slowing pipelines down.
package sse
