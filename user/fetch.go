package user

import (
	"context"
	"encoding/json"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/stream"
)

// Fetcher loads the raw payload of one user.
type Fetcher interface {
	FetchUser(ctx context.Context, id int) (json.RawMessage, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id int) (json.RawMessage, error)

// FetchUser calls f.
func (f FetcherFunc) FetchUser(ctx context.Context, id int) (json.RawMessage, error) {
	return f(ctx, id)
}

// Fetch returns a stream that fetches user id once per activation. The
// fetch runs on its own goroutine with the activation context; errors are
// delivered as FETCH_FAILED unless they already carry a code.
func Fetch(f Fetcher, id int) stream.Stream[Record] {
	return stream.New(func(ctx context.Context, e *stream.Emitter[Record]) {
		go func() {
			data, err := f.FetchUser(ctx, id)
			if err != nil {
				if _, ok := errors.AsAppError(err); !ok {
					err = errors.FetchFailed(id, err)
				}
				e.Error(err)
				return
			}
			if e.Next(NewRecord(id).WithData(data)) {
				e.Complete()
			}
		}()
	})
}
