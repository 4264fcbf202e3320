// Package goroutine runs long-lived background workers, such as queue
// consumers, under a shared concurrency cap.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/banglapremium/mailrelay/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine = 16

// ErrClosed is returned by Go once Wait has been called.
var ErrClosed = errors.New("goroutine manager is closed")

// ErrLimitReached is returned by Go when every slot is taken.
var ErrLimitReached = errors.New("goroutine limit reached")

// Manager starts named workers, recovers their panics and collects their
// errors until Wait is called.
type Manager struct {
	wg   sync.WaitGroup
	sema chan struct{}

	mu     sync.Mutex
	errs   []error
	closed bool
}

func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}
	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go runs f in a new goroutine. It never blocks: when the manager is closed
// or saturated the worker is not started and an error is returned.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		slog.WarnContext(ctx, "worker not started, manager closed", "worker", name)
		return ErrClosed
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "worker not started, limit reached", "worker", name, "limit", cap(g.sema))
		return ErrLimitReached
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() { <-g.sema }()

		if err := run(ctx, name, f); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, fmt.Errorf("%s: %w", name, err))
			g.mu.Unlock()
		}
	}()

	return nil
}

func run(ctx context.Context, name string, f func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			slog.ErrorContext(ctx, "panic occurred in worker", "worker", name, "panic", rvr,
				"stack", stacktrace.InternalPaths(stack))
			err = fmt.Errorf("panic: %v", rvr)
		}
	}()

	if ctx.Err() != nil {
		slog.WarnContext(ctx, "worker canceled before start", "worker", name, "because", ctx.Err())
		return nil
	}

	return f(ctx)
}

// Wait refuses new workers, blocks until running ones return and joins their errors.
func (g *Manager) Wait() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
