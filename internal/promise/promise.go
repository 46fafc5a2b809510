// Package promise implements the one-shot, single-writer/multi-reader
// futures the scheduling core uses to bridge per-node compile state
// (pickle readiness, Java completion) across goroutines without a
// dedicated async task runtime.
package promise

import (
	"context"
	"sync"

	rifterrors "github.com/riftlang/riftbuild/pkg/errors"
)

// FailKind tags the three meanings a promise's exceptional completion can
// carry. These are plain enum variants, not exceptions thrown for control
// flow.
type FailKind int

const (
	// CompletePromise means the phase was normally skipped: either the
	// traversal is not pipelined, or the node produced no value worth
	// carrying (e.g. no pickle emitted) without anything having failed.
	CompletePromise FailKind = iota
	// FailPromise means this node's own operation failed.
	FailPromise
	// BlockURI means this node was never attempted because an upstream
	// dependency was already blocked or had failed.
	BlockURI
)

func (k FailKind) String() string {
	switch k {
	case CompletePromise:
		return "CompletePromise"
	case FailPromise:
		return "FailPromise"
	case BlockURI:
		return "BlockURI"
	default:
		return "Unknown"
	}
}

// Outcome is the terminal state a Promise reaches: either a real value,
// or one of the three sentinel completions above.
type Outcome[T any] struct {
	Value    T
	HasValue bool
	FailKind FailKind
}

// Promise is a write-once future. Exactly one of Complete or Fail may be
// called, exactly once; a second write is a programmer error and is
// reported rather than silently ignored or panicking.
type Promise[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	resolved bool
	outcome  Outcome[T]
}

// New returns an unresolved promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Completed returns a promise pre-resolved with a value, used when a node
// short-circuits before any asynchronous phase begins.
func Completed[T any](value T) *Promise[T] {
	p := New[T]()
	_ = p.Complete(value)
	return p
}

// Failed returns a promise pre-resolved with a sentinel outcome.
func Failed[T any](kind FailKind) *Promise[T] {
	p := New[T]()
	_ = p.Fail(kind)
	return p
}

// Complete resolves the promise with a real value. Returns
// PromiseViolationError if the promise was already resolved.
func (p *Promise[T]) Complete(value T) error {
	return p.resolve(Outcome[T]{Value: value, HasValue: true})
}

// Fail resolves the promise with one of the sentinel completions.
func (p *Promise[T]) Fail(kind FailKind) error {
	return p.resolve(Outcome[T]{FailKind: kind})
}

func (p *Promise[T]) resolve(outcome Outcome[T]) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolved {
		return rifterrors.NewPromiseViolationError("promise already resolved")
	}
	p.outcome = outcome
	p.resolved = true
	close(p.done)
	return nil
}

// Await blocks until the promise resolves or ctx is cancelled. On
// cancellation it returns ctx.Err() rather than leaving the caller
// pending forever.
func (p *Promise[T]) Await(ctx context.Context) (Outcome[T], error) {
	select {
	case <-p.done:
		p.mu.Lock()
		outcome := p.outcome
		p.mu.Unlock()
		return outcome, nil
	case <-ctx.Done():
		var zero Outcome[T]
		return zero, ctx.Err()
	}
}

// Resolved reports whether the promise has already reached a terminal
// state, without blocking.
func (p *Promise[T]) Resolved() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolved
}
