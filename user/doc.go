// Package user is the fetch collaborator of the pipeline engine.
//
// Fetch turns one user id into a single-value stream: it emits exactly one
// Record with Data populated and completes, or emits nothing and fails with
// a FETCH_FAILED error. The stream runs the fetch under its activation
// context, so disposing the subscription aborts the request in flight.
//
// Client is the HTTP Fetcher used by the CLI:
//
//	client, err := user.NewClient(cfg.Fetch, user.WithMetrics(reg))
//	records := stream.MergeMap(stream.FromSlice(ids), func(id int) stream.Stream[user.Record] {
//	    return user.Fetch(client, id)
//	})
package user
