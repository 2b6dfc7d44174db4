// Package eventloop runs UI work on a single goroutine. Network calls run
// elsewhere and hand their results back as tasks, so every DOM mutation is
// serialized without locks around the document.
package eventloop

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Do once the loop no longer accepts tasks.
var ErrClosed = errors.New("event loop closed")

type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool

	inflight sync.WaitGroup
}

func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post enqueues fn. It never blocks, so tasks may post further tasks.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run processes tasks in FIFO order until ctx is done or Close is called.
// Tasks still queued when the loop stops are run before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	for {
		ran, closed := l.drain()
		if ran > 0 {
			continue
		}
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			l.Close()
			l.drain()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) drain() (int, bool) {
	l.mu.Lock()
	tasks := l.queue
	l.queue = nil
	closed := l.closed
	l.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks), closed
}

// Do posts fn and waits until it has run.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Dispatch runs work on its own goroutine and posts then back onto the loop
// when work returns. Overlapping dispatches are not ordered: callbacks run in
// the order their work finishes.
func (l *Loop) Dispatch(work func(), then func()) {
	l.inflight.Add(1)
	go func() {
		work()
		if !l.Post(func() {
			defer l.inflight.Done()
			then()
		}) {
			l.inflight.Done()
		}
	}()
}

// Wait blocks until every dispatched call has delivered its callback, or
// been dropped because the loop closed.
func (l *Loop) Wait() {
	l.inflight.Wait()
}

// Close stops the loop from accepting new tasks.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}
