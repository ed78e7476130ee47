package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/server"
)

// Handler streams hub events to the caller. The optional pipeline query
// parameter is a glob restricting which pipelines are streamed. A comment
// line is written every keepAlive; zero disables keep-alives.
func Handler(hub *Hub, keepAlive time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := c.DefaultQuery("pipeline", "*")
		if _, err := filepath.Match(filter, ""); err != nil {
			server.RespondWithError(c, errors.InvalidInput("pipeline", "malformed pattern"))
			return
		}

		w := c.Writer
		// Streams outlive the server's write timeout.
		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
			hub.log.Debug("could not clear write deadline", logger.MergeWithError(nil, err))
		}

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		client := NewClient(uuid.NewString(), filter)
		if !hub.Register(client) {
			return
		}
		defer hub.Unregister(client)

		hello, _ := json.Marshal(Event{Type: EventConnected, Time: time.Now()})
		writeFrame(w, frame{event: EventConnected, data: hello})

		var tick <-chan time.Time
		if keepAlive > 0 {
			t := time.NewTicker(keepAlive)
			defer t.Stop()
			tick = t.C
		}

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-client.frames:
				if !ok {
					return
				}
				writeFrame(w, f)
			case now := <-tick:
				_, _ = fmt.Fprintf(w, ": keepalive %d\n\n", now.Unix())
				w.Flush()
			}
		}
	}
}

func writeFrame(w gin.ResponseWriter, f frame) {
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", f.event, f.data)
	w.Flush()
}
