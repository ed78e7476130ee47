// Package executor runs pipelines one at a time and reports their outcome.
//
// An Executor owns a single running slot. Run claims it, builds a fresh
// stream from the pipeline factory, subscribes, reports every value and
// waits for the terminal event. Whatever the outcome, the subscription is
// disposed exactly once, the outcome is reported (Completed or Error) and
// the invocation-ended marker follows. A second Run while one is in flight
// fails with an EXECUTOR_BUSY error.
//
//	exec := executor.New(executor.WithReporter(executor.NewConsoleReporter(os.Stdout)))
//	res, err := exec.Run(ctx, "demoMap", executor.Bind(func() stream.Stream[user.Record] {
//		return demo.Map(ids)
//	}))
//
// Go is the asynchronous form used by the interactive menu: it returns as
// soon as the slot is claimed and invokes a continuation after the slot has
// been released again.
package executor
