package sse

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/rxfetch/component"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/observability"
)

// Component runs a Hub under the component registry.
type Component struct {
	hub  *Hub
	path string
	wg   sync.WaitGroup
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a component around a fresh Hub served at path.
func NewComponent(path string, log *logger.Logger) *Component {
	return &Component{hub: NewHub(log), path: path}
}

// Hub returns the hub for publishing and serving.
func (c *Component) Hub() *Hub { return c.hub }

func (c *Component) Name() string { return "sse" }

// Start launches the hub loop.
func (c *Component) Start(context.Context) error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.hub.Run()
	}()
	return nil
}

// Stop ends the hub loop, disconnecting every client.
func (c *Component) Stop(context.Context) error {
	c.hub.Stop()
	c.wg.Wait()
	return nil
}

func (c *Component) CheckHealth(context.Context) observability.Health {
	return observability.Health{
		Name:    c.Name(),
		Status:  observability.HealthStatusUp,
		Message: fmt.Sprintf("%d clients connected", c.hub.ClientCount()),
	}
}

func (c *Component) Describe() component.Description {
	return component.Description{Name: "Event stream", Type: "sse", Details: "path " + c.path}
}
