package sched

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/weave/internal/errors"
)

const (
	// DefaultInterval is the default pause between scheduling slices.
	DefaultInterval = 16 * time.Millisecond

	// DefaultSlice is the default time budget of one slice.
	DefaultSlice = 8 * time.Millisecond

	defaultTaskQueue = 256
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterval sets the pause between slices.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithSlice sets the time budget handed to callbacks in each slice.
func WithSlice(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.slice = d
		}
	}
}

// WithLogger sets the loop's logger.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop is a single-goroutine Port. Tasks submitted with Post run as soon as
// the loop is free; registered callbacks run once per tick with a fresh slice
// budget. Everything the loop runs executes on the goroutine that called Run.
type Loop struct {
	interval time.Duration
	slice    time.Duration
	logger   *slog.Logger

	tasks   chan func()
	done    chan struct{}
	running atomic.Bool

	mu        sync.Mutex
	callbacks []Callback
	closed    bool
}

// NewLoop creates a Loop. It does nothing until Run is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		interval: DefaultInterval,
		slice:    DefaultSlice,
		logger:   slog.Default().With("component", "sched"),
		tasks:    make(chan func(), defaultTaskQueue),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Request implements Port. It is safe to call from any goroutine.
func (l *Loop) Request(cb Callback) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.callbacks = append(l.callbacks, cb)
}

// Post submits task to run on the loop goroutine.
// It blocks while the task queue is full and fails once the loop has stopped.
func (l *Loop) Post(task func()) error {
	select {
	case <-l.done:
		return errors.New("W040")
	default:
	}
	select {
	case l.tasks <- task:
		return nil
	case <-l.done:
		return errors.New("W040")
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return errors.New("W040")
	}
}

// Run processes tasks and slices until ctx is cancelled.
// It returns ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("W041")
	}
	defer l.shutdown()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("scheduler loop started",
		"interval", l.interval,
		"slice", l.slice)

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("scheduler loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case task := <-l.tasks:
			task()
		case <-ticker.C:
			l.runSlice()
		}
	}
}

// runSlice invokes the callbacks registered before the tick.
func (l *Loop) runSlice() {
	l.mu.Lock()
	batch := l.callbacks
	l.callbacks = nil
	l.mu.Unlock()

	for _, cb := range batch {
		cb(Budget(l.slice))
	}
}

func (l *Loop) shutdown() {
	l.mu.Lock()
	l.closed = true
	l.callbacks = nil
	l.mu.Unlock()
	close(l.done)
}
