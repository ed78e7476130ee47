package userapi

import (
	"context"

	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/metrics"
	"github.com/kbukum/rxfetch/observability"
	"github.com/kbukum/rxfetch/server"
	"github.com/kbukum/rxfetch/version"
)

// Service is the mock user API: a server.Server with the user routes and the
// system endpoints mounted. It is a component.Component through the
// embedded server.
type Service struct {
	*server.Server
	dir *Directory
}

// New builds the service. reg may be nil to skip request metrics and
// /metrics.
func New(cfg Config, reg *metrics.Registry, log *logger.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get(serviceName)
	}

	srv := server.New(serviceName, cfg.Server, log)
	s := &Service{Server: srv, dir: NewDirectory(cfg)}

	srv.ApplyMiddleware(reg)
	srv.RegisterDefaultEndpoints(reg, s.health)
	NewHandler(s.dir, log.WithComponent(serviceName)).Register(srv.Engine())
	return s, nil
}

// Directory returns the served user set.
func (s *Service) Directory() *Directory {
	return s.dir
}

func (s *Service) health(ctx context.Context) *observability.ServiceHealth {
	return observability.CheckAll(ctx, serviceName, version.Short(), s.Server)
}
