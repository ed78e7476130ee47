package monitor

import (
	"context"

	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/metrics"
	"github.com/kbukum/rxfetch/observability"
	"github.com/kbukum/rxfetch/server"
	"github.com/kbukum/rxfetch/sse"
	"github.com/kbukum/rxfetch/version"
)

const (
	serviceName = "monitor"

	// EventsPath serves the pipeline event stream.
	EventsPath = "/events"
)

// Service exposes the CLI's own health, Prometheus metrics and a live
// stream of pipeline events. Register the hub component after the service:
// components stop in reverse order, and a stopped hub ends the open streams
// the server's shutdown would otherwise wait for.
type Service struct {
	*server.Server
	hub *sse.Component
}

// New builds the monitor around hub.
func New(cfg Config, reg *metrics.Registry, hub *sse.Component, log *logger.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get(serviceName)
	}

	srv := server.New(serviceName, cfg.Server, log)
	s := &Service{Server: srv, hub: hub}
	srv.ApplyMiddleware(reg)
	srv.RegisterDefaultEndpoints(reg, s.health)
	srv.Engine().GET(EventsPath, sse.Handler(hub.Hub(), cfg.KeepAlive))
	return s, nil
}

func (s *Service) health(ctx context.Context) *observability.ServiceHealth {
	return observability.CheckAll(ctx, serviceName, version.Short(), s.Server, s.hub)
}
