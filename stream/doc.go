// Package stream provides a minimal push-based reactive stream engine.
//
// A Stream is a lazy blueprint: nothing happens until Subscribe is called,
// and every call is an independent activation. An activation pushes zero or
// more values to its Observer and then exactly one terminal event (error or
// completion). Subscribe returns a Subscription whose Dispose cancels the
// activation; after disposal the observer sees nothing more.
//
// Cancellation is carried by context.Context: each activation runs under a
// child context that Dispose cancels, so producers doing I/O (see user.Fetch)
// abort their in-flight requests when disposed.
//
// # Operators
//
//   - Map: synchronous value-by-value transform
//   - Reduce: fold all values into one, emitted after the source completes
//   - MergeMap: unbounded concurrent flattening (order NOT preserved)
//   - SwitchMap: latest-only flattening (previous inner is disposed)
//
// Errors returned by (or panics raised in) user functions are delivered as
// TRANSFORM_FAILED errors through the ordinary error channel.
//
// # Usage
//
//	ids := stream.Of(1, 3, 4)
//	users := stream.MergeMap(ids, func(id int) stream.Stream[user.Record] {
//	    return user.Fetch(client, id)
//	})
//	all := stream.Reduce(users, []user.Record{}, func(acc []user.Record, r user.Record) ([]user.Record, error) {
//	    return append(acc, r), nil
//	})
//	records, err := stream.Collect(ctx, all)
package stream
