package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/kbukum/rxfetch/demo"
	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/executor"
	"github.com/kbukum/rxfetch/logger"
)

// Menu offers the catalog on a line-oriented terminal.
type Menu struct {
	catalog demo.Catalog
	exec    *executor.Executor
	in      io.Reader
	log     *logger.Logger

	mu  sync.Mutex
	out io.Writer

	running sync.WaitGroup
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(m *Menu) { m.log = l }
}

// New creates a menu reading choices from in and writing prompts to out.
func New(catalog demo.Catalog, exec *executor.Executor, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		catalog: catalog,
		exec:    exec,
		in:      in,
		out:     out,
		log:     logger.Get("menu"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the menu and serves choices until the user quits, the input
// ends or ctx is done. A choice starts in the background; the menu is shown
// again once it has ended. On quit or end of input Run waits for the
// running invocation before returning.
func (m *Menu) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		scanner := bufio.NewScanner(m.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	m.show()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			m.wait(ctx)
			return err
		case line := <-lines:
			if m.handle(ctx, strings.TrimSpace(line)) {
				m.wait(ctx)
				return nil
			}
		}
	}
}

// handle acts on one input line and reports whether the user asked to quit.
func (m *Menu) handle(ctx context.Context, choice string) bool {
	switch strings.ToLower(choice) {
	case "":
		m.show()
		return false
	case "q", "quit", "exit":
		return true
	}

	p, ok := m.resolve(choice)
	if !ok {
		m.printf("unknown choice %q\n", choice)
		m.show()
		return false
	}

	m.running.Add(1)
	err := m.exec.Go(ctx, p.Name, p.Factory, func(*executor.Result, error) {
		defer m.running.Done()
		m.show()
	})
	if err != nil {
		m.running.Done()
		if errors.Is(err, errors.ErrCodeExecutorBusy) {
			m.printf("%s\n", errors.Message(err))
		} else {
			m.log.Error("could not start pipeline", logger.ErrorFields(p.Name, err))
		}
	}
	return false
}

// resolve accepts a 1-based position or a pipeline name.
func (m *Menu) resolve(choice string) (demo.Pipeline, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(m.catalog) {
			return demo.Pipeline{}, false
		}
		return m.catalog[n-1], true
	}
	return m.catalog.Lookup(choice)
}

func (m *Menu) wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		m.running.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (m *Menu) show() {
	var b strings.Builder
	b.WriteString("\nPipelines:\n")
	for i, p := range m.catalog {
		fmt.Fprintf(&b, "  %d) %-20s %s\n", i+1, p.Name, p.Description)
	}
	b.WriteString("  q) quit\n> ")
	m.printf("%s", b.String())
}

func (m *Menu) printf(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintf(m.out, format, args...)
}
