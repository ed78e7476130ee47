package sse

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/kbukum/rxfetch/logger"
)

// clientBuffer is how many frames a slow client may lag behind before
// frames are dropped for it.
const clientBuffer = 256

// frame is an encoded event ready to write.
type frame struct {
	event string
	data  []byte
}

// Client is one connected stream. It receives the events of pipelines whose
// name matches its filter, a filepath.Match glob.
type Client struct {
	id     string
	filter string
	frames chan frame
}

// NewClient creates a client. An empty filter matches every pipeline.
func NewClient(id, filter string) *Client {
	if filter == "" {
		filter = "*"
	}
	return &Client{id: id, filter: filter, frames: make(chan frame, clientBuffer)}
}

// ID returns the client's identifier.
func (c *Client) ID() string { return c.id }

// Filter returns the pipeline glob the client listens to.
func (c *Client) Filter() string { return c.filter }

func (c *Client) matches(pipeline string) bool {
	if pipeline == "" {
		return true
	}
	ok, err := filepath.Match(c.filter, pipeline)
	return err == nil && ok
}

// send queues f and reports false when the client is too slow to take it.
func (c *Client) send(f frame) bool {
	select {
	case c.frames <- f:
		return true
	default:
		return false
	}
}

type message struct {
	pipeline string
	frame    frame
}

// Hub fans published events out to the connected clients. Publish never
// blocks the caller: when the hub is backed up the event is dropped.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	stopOnce   sync.Once
	log        *logger.Logger

	mu sync.RWMutex
}

// NewHub creates a hub; call Run to start delivering.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Get("sse")
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, clientBuffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run is the hub's event loop. It returns after Stop, having closed every
// client.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("stream client registered", logger.Fields("client_id", c.id, "filter", c.filter, "clients", n))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.frames)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("stream client unregistered", logger.Fields("client_id", c.id, "clients", n))

		case m := <-h.broadcast:
			h.deliver(m)
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Register adds c. It reports false if the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes c and closes its frame channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish sends e to every client whose filter matches e.Pipeline.
func (h *Hub) Publish(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.log.Warn("unencodable stream event", logger.MergeWithError(logger.Fields(logger.FieldPipeline, e.Pipeline), err))
		return
	}
	select {
	case h.broadcast <- message{pipeline: e.Pipeline, frame: frame{event: e.Type, data: data}}:
	case <-h.done:
	default:
		h.log.Warn("stream hub backed up, dropping event", logger.Fields(logger.FieldPipeline, e.Pipeline, "type", e.Type))
	}
}

func (h *Hub) deliver(m message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.matches(m.pipeline) {
			continue
		}
		if !c.send(m.frame) {
			h.log.Warn("stream client too slow, dropping event", logger.Fields("client_id", c.id))
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.frames)
		delete(h.clients, id)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var _ Broadcaster = (*Hub)(nil)
