package executor

import (
	"context"
	"sync"

	"github.com/kbukum/rxfetch/errors"
)

// settlement is a one-shot completion. The first resolve or reject wins;
// anything after it is ignored.
type settlement struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newSettlement() *settlement {
	return &settlement{done: make(chan struct{})}
}

func (s *settlement) resolve() bool {
	return s.settle(nil)
}

func (s *settlement) reject(err error) bool {
	return s.settle(err)
}

func (s *settlement) settle(err error) bool {
	won := false
	s.once.Do(func() {
		s.err = err
		won = true
		close(s.done)
	})
	return won
}

// wait blocks until the settlement happens or ctx ends. An ended ctx settles
// it as CANCELED, so a terminal event arriving afterwards is dropped.
func (s *settlement) wait(ctx context.Context) error {
	select {
	case <-s.done:
	case <-ctx.Done():
		s.reject(errors.Canceled(ctx.Err()))
		<-s.done
	}
	return s.err
}
