package sse

import (
	"time"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/executor"
)

// Reporter publishes executor events to a Broadcaster.
type Reporter struct {
	out Broadcaster
	now func() time.Time
}

var _ executor.Reporter = (*Reporter)(nil)

// NewReporter returns a Reporter publishing to out.
func NewReporter(out Broadcaster) *Reporter {
	return &Reporter{out: out, now: time.Now}
}

func (r *Reporter) Value(name string, v any) {
	r.out.Publish(Event{Type: EventValue, Pipeline: name, Value: v, Time: r.now()})
}

func (r *Reporter) Completed(name string) {
	r.out.Publish(Event{Type: EventCompleted, Pipeline: name, Time: r.now()})
}

func (r *Reporter) Failed(name string, err error) {
	r.out.Publish(Event{
		Type:     EventFailed,
		Pipeline: name,
		Error:    errors.Message(err),
		Code:     string(errors.Code(err)),
		Time:     r.now(),
	})
}

func (r *Reporter) Ended(name string) {
	r.out.Publish(Event{Type: EventEnded, Pipeline: name, Time: r.now()})
}
