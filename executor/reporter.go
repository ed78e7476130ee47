package executor

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/kbukum/rxfetch/errors"
)

// Reporter receives the observable outcome of each invocation, in order:
// zero or more Value calls, then Completed or Failed, then Ended.
type Reporter interface {
	Value(name string, v any)
	Completed(name string)
	Failed(name string, err error)
	Ended(name string)
}

// ConsoleReporter prints one line per event. Values are written as JSON.
type ConsoleReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleReporter returns a reporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (r *ConsoleReporter) Value(_ string, v any) {
	line, err := json.Marshal(v)
	if err != nil {
		r.println(fmt.Sprint(v))
		return
	}
	r.println(string(line))
}

func (r *ConsoleReporter) Completed(name string) {
	r.println(fmt.Sprintf("Completed(%s)", name))
}

func (r *ConsoleReporter) Failed(_ string, err error) {
	r.println("Error: " + errors.Message(err))
}

func (r *ConsoleReporter) Ended(name string) {
	r.println(fmt.Sprintf("Ended(%s)", name))
}

func (r *ConsoleReporter) println(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, s)
}

type nopReporter struct{}

func (nopReporter) Value(string, any)    {}
func (nopReporter) Completed(string)     {}
func (nopReporter) Failed(string, error) {}
func (nopReporter) Ended(string)         {}

// Tee returns a Reporter that forwards every event to each of reporters in
// order. Nil entries are skipped.
func Tee(reporters ...Reporter) Reporter {
	var rs teeReporter
	for _, r := range reporters {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return rs
}

type teeReporter []Reporter

func (t teeReporter) Value(name string, v any) {
	for _, r := range t {
		r.Value(name, v)
	}
}

func (t teeReporter) Completed(name string) {
	for _, r := range t {
		r.Completed(name)
	}
}

func (t teeReporter) Failed(name string, err error) {
	for _, r := range t {
		r.Failed(name, err)
	}
}

func (t teeReporter) Ended(name string) {
	for _, r := range t {
		r.Ended(name)
	}
}
