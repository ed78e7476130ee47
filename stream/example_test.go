package stream_test

import (
	"context"
	"fmt"

	"github.com/kbukum/rxfetch/stream"
)

func ExampleMap() {
	doubled := stream.Map(stream.Of(1, 3, 4), func(v int) (int, error) { return v * 2, nil })
	values, err := stream.Collect(context.Background(), doubled)
	fmt.Println(values, err)
	// Output: [2 6 8] <nil>
}

func ExampleReduce() {
	total := stream.Reduce(stream.Of(1, 3, 4), 0, func(acc, v int) (int, error) { return acc + v, nil })
	values, _ := stream.Collect(context.Background(), total)
	fmt.Println(values)
	// Output: [8]
}

func ExampleMergeMap() {
	pairs := stream.MergeMap(stream.Of("a", "b"), func(s string) stream.Stream[string] {
		return stream.Of(s+"1", s+"2")
	})
	values, _ := stream.Collect(context.Background(), pairs)
	fmt.Println(values)
	// Output: [a1 a2 b1 b2]
}

func ExampleStream_Subscribe() {
	sub := stream.Of(1, 2).Subscribe(context.Background(), stream.Observer[int]{
		OnNext:     func(v int) { fmt.Println("next", v) },
		OnComplete: func() { fmt.Println("done") },
	})
	sub.Dispose()
	// Output:
	// next 1
	// next 2
	// done
}
