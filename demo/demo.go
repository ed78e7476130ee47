// Package demo holds the named pipelines the CLI offers.
package demo

import (
	"slices"

	"github.com/kbukum/rxfetch/stream"
	"github.com/kbukum/rxfetch/user"
)

// Pipeline names.
const (
	NameMap             = "demoMap"
	NameMapReduce       = "demoMapReduce"
	NameMergeMapReduce  = "demoMergeMapReduce"
	NameSwitchMapReduce = "demoSwitchMapReduce"
)

// Map turns each id into a record without data.
func Map(ids []int) stream.Stream[user.Record] {
	return stream.Map(stream.FromSlice(slices.Clone(ids)), func(id int) (user.Record, error) {
		return user.NewRecord(id), nil
	})
}

// MapReduce collects the records of Map into one slice.
func MapReduce(ids []int) stream.Stream[[]user.Record] {
	return collect(Map(ids))
}

// MergeMapReduce fetches every id concurrently and collects the records in
// arrival order. Any failed fetch fails the pipeline and cancels the rest.
func MergeMapReduce(ids []int, f user.Fetcher) stream.Stream[[]user.Record] {
	return collect(stream.MergeMap(stream.FromSlice(slices.Clone(ids)), fetchWith(f)))
}

// SwitchMapReduce fetches ids latest-only: each new id cancels the fetch
// still running for the previous one.
func SwitchMapReduce(ids []int, f user.Fetcher) stream.Stream[[]user.Record] {
	return collect(stream.SwitchMap(stream.FromSlice(slices.Clone(ids)), fetchWith(f)))
}

func fetchWith(f user.Fetcher) func(int) stream.Stream[user.Record] {
	return func(id int) stream.Stream[user.Record] {
		return user.Fetch(f, id)
	}
}

// collect folds records into a slice. The empty seed has no capacity, so
// activations never share a backing array.
func collect(s stream.Stream[user.Record]) stream.Stream[[]user.Record] {
	return stream.Reduce(s, []user.Record{}, func(acc []user.Record, r user.Record) ([]user.Record, error) {
		return append(acc, r), nil
	})
}
