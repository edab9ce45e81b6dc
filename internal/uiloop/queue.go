// Package uiloop serialises view mutations onto the goroutine that owns the
// UI. Callbacks raised elsewhere post closures; the owner drains them.
package uiloop

import (
	"context"
	"sync"
)

// Poster schedules fn to run on the UI-owning goroutine.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(fn func())

func (f PosterFunc) Post(fn func()) { f(fn) }

// Immediate runs posted functions on the caller's goroutine. Use it only
// when the caller already owns the UI.
var Immediate Poster = PosterFunc(func(fn func()) { fn() })

// Queue is an unbounded FIFO of UI work. Post never blocks, so it is safe
// to call from the owning goroutine itself.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Post appends fn to the queue.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Ready fires when work may be pending. Spurious wakeups are possible.
func (q *Queue) Ready() <-chan struct{} { return q.wake }

// Len returns the number of pending functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every pending function in posting order and returns how many
// ran. Functions posted while draining run in the same call.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
		}
		n += len(batch)
	}
}

// Run drains the queue on the calling goroutine until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.Drain()
			return ctx.Err()
		case <-q.wake:
			q.Drain()
		}
	}
}
