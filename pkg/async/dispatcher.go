package async

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

// Dispatcher schedules detached tasks. The zero value is not usable; use
// NewDispatcher.
type Dispatcher struct {
	log     *slog.Logger
	wg      sync.WaitGroup
	pending atomic.Int64
	onDone  func(name string, err error)

	// mu orders wg.Add in Go before the final wg.Wait in Close.
	mu     sync.RWMutex
	closed bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for task failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithOnDone registers a hook invoked after every task with its outcome.
// It runs on the task goroutine.
func WithOnDone(fn func(name string, err error)) Option {
	return func(d *Dispatcher) { d.onDone = fn }
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{log: logger.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Go runs fn on a new goroutine with a context detached from ctx's
// cancellation. It never blocks and never reports fn's outcome.
// After Close, fn is dropped and the done hook receives ErrClosed.
func (d *Dispatcher) Go(ctx context.Context, name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	detached := context.WithoutCancel(ctx)

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.log.DebugContext(detached, "async task dropped after close", slog.String("task", name))
		if d.onDone != nil {
			d.onDone(name, ErrClosed)
		}
		return
	}
	d.wg.Add(1)
	d.pending.Add(1)
	d.mu.RUnlock()

	go func() {
		defer d.wg.Done()
		defer d.pending.Add(-1)

		err := d.run(detached, fn)
		if err != nil {
			d.log.WarnContext(detached, "async task failed",
				slog.String("task", name),
				logger.Error(err),
			)
		}
		if d.onDone != nil {
			d.onDone(name, err)
		}
	}()
}

func (d *Dispatcher) run(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return fn(ctx)
}

// Pending returns the number of tasks that have not finished.
func (d *Dispatcher) Pending() int {
	return int(d.pending.Load())
}

// Wait blocks until every scheduled task has finished. Callers must not
// schedule tasks concurrently with Wait; shutdown paths use Close.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close stops accepting tasks and waits for in-flight ones until ctx is done.
// It is safe to call more than once.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %d pending", ErrShutdownTimeout, d.Pending())
	}
}
