// Package bootstrap orchestrates the rxfetch process lifecycle.
//
// NewApp validates the configuration and initializes logging. Components
// registered on the App start in order; OnConfigure callbacks then wire
// whatever depends on them. RunTask runs a finite task (the interactive menu
// or a batch of pipelines) with SIGINT/SIGTERM cancellation, and Run blocks
// until a signal for serve-only mode. Both shut down through the OnStop hooks
// and then the components in reverse order.
package bootstrap
