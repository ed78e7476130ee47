package component

import (
	"context"

	"github.com/kbukum/rxfetch/observability"
)

// Component represents a lifecycle-managed service.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component. It returns once the
	// component is ready to serve.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	observability.HealthChecker
}

// Description holds summary information for the startup log.
type Description struct {
	// Name is the human-readable display name. If empty, the component's
	// Name() is used.
	Name string
	// Type categorizes the component: "server", "telemetry", ...
	Type string
	// Details is a one-liner such as the bound address.
	Details string
}

// Describable is optionally implemented by Components to report what they
// are once started.
type Describable interface {
	Describe() Description
}
