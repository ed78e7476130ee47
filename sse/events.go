package sse

import "time"

// Event types sent on the stream.
const (
	// EventConnected is sent once when a client connects.
	EventConnected = "connected"

	EventValue     = "value"
	EventCompleted = "completed"
	EventFailed    = "failed"
	EventEnded     = "ended"
)

// Event is one pipeline lifecycle event as seen by stream clients.
type Event struct {
	Type     string    `json:"type"`
	Pipeline string    `json:"pipeline,omitempty"`
	Value    any       `json:"value,omitempty"`
	Error    string    `json:"error,omitempty"`
	Code     string    `json:"code,omitempty"`
	Time     time.Time `json:"time"`
}

// Broadcaster publishes events to whoever is listening.
type Broadcaster interface {
	Publish(e Event)
}
