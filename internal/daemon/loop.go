package daemon

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("event loop stopped")

type request struct {
	fn   func()
	done chan struct{}
}

// Loop runs every state change on a single goroutine. D-Bus calls arrive on
// godbus goroutines and signals on the os/signal goroutine; both are merged
// here so that a mutation and its render never interleave with another.
type Loop struct {
	logger *slog.Logger

	requests chan request
	stopped  chan struct{}

	mu       sync.Mutex
	signals  <-chan os.Signal
	onSignal func(os.Signal)
	running  bool
}

// NewLoop creates a Loop. It does nothing until Run is called.
func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		logger:   logger,
		requests: make(chan request),
		stopped:  make(chan struct{}),
	}
}

// SetSignalHandler makes the loop call handler for every signal received on
// ch. Must be called before Run.
func (l *Loop) SetSignalHandler(ch <-chan os.Signal, handler func(os.Signal)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.signals = ch
	l.onSignal = handler
}

// Run processes requests and signals until ctx is done. It may only be
// called once.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("event loop already running")
	}
	l.running = true
	signals, onSignal := l.signals, l.onSignal
	l.mu.Unlock()

	defer close(l.stopped)

	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop stopped")
			return ctx.Err()
		case req := <-l.requests:
			req.fn()
			close(req.done)
		case sig, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			if onSignal != nil {
				onSignal(sig)
			}
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	req := request{fn: fn, done: make(chan struct{})}

	select {
	case l.requests <- req:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once accepted the request always runs to completion.
	<-req.done
	return nil
}
