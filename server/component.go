package server

import (
	"context"

	"github.com/kbukum/rxfetch/component"
	"github.com/kbukum/rxfetch/observability"
)

var (
	_ component.Component   = (*Server)(nil)
	_ component.Describable = (*Server)(nil)
)

// Name returns the component name used for registration.
func (s *Server) Name() string { return s.name }

// CheckHealth reports up while the server is serving.
func (s *Server) CheckHealth(context.Context) observability.Health {
	if s.serving() {
		return observability.Health{Name: s.name, Status: observability.HealthStatusUp}
	}
	return observability.Health{
		Name:    s.name,
		Status:  observability.HealthStatusDown,
		Message: "not serving",
	}
}

// Describe reports the bound address.
func (s *Server) Describe() component.Description {
	return component.Description{Name: s.name, Type: "server", Details: s.Addr()}
}
