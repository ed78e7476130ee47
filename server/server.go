package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/metrics"
	"github.com/kbukum/rxfetch/resilience"
	"github.com/kbukum/rxfetch/server/endpoint"
	"github.com/kbukum/rxfetch/server/middleware"
)

const shutdownTimeout = 5 * time.Second

// Server is a Gin HTTP server served over HTTP/1.1 and h2c.
type Server struct {
	name       string
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger

	mu    sync.RWMutex
	bound net.Addr
}

// New creates a Server. No middleware is applied yet; call ApplyMiddleware
// before registering routes.
func New(name string, cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.Get(name)
	}

	engine := gin.New()
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          cfg.IdleTimeout,
	}

	return &Server{
		name: name,
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      h2c.NewHandler(engine, h2s),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		engine: engine,
		config: cfg,
		log:    log.WithComponent(name),
	}
}

// Engine returns the underlying Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// ApplyMiddleware installs recovery, request id, metrics (when reg is not
// nil), the shared rate limiter (when configured) and request logging.
func (s *Server) ApplyMiddleware(reg *metrics.Registry) {
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.RequestID())
	if reg != nil {
		s.engine.Use(middleware.Metrics(reg))
	}
	if s.config.RateLimit > 0 {
		s.engine.Use(middleware.RateLimit(resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Name:  s.name,
			Rate:  s.config.RateLimit,
			Burst: s.config.Burst,
		})))
	}
	s.engine.Use(middleware.RequestLogger(s.log))
}

// RegisterDefaultEndpoints registers /health, /version and, when reg is not
// nil, /metrics.
func (s *Server) RegisterDefaultEndpoints(reg *metrics.Registry, health endpoint.HealthFunc) {
	s.engine.GET("/health", endpoint.Health(health))
	s.engine.GET("/version", endpoint.Version())
	if reg != nil {
		s.engine.GET("/metrics", endpoint.Metrics(reg))
	}
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.bound = listener.Addr()
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", s.Addr()))
	return nil
}

// Stop gracefully shuts down the server, waiting at most five seconds for
// requests in flight.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.mu.Lock()
	s.bound = nil
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server shut down")
	return nil
}

// Addr returns the bound address while serving, else the configured one.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bound != nil {
		return s.bound.String()
	}
	return s.httpServer.Addr
}

// URL returns the base URL clients should use.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

func (s *Server) serving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bound != nil
}
