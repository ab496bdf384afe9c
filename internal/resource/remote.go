// Package resource tracks the lifecycle of data fetched from the API.
package resource

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrClosed is reported by Load once the resource has been closed.
var ErrClosed = errors.New("resource closed")

// Status is the phase of a remote resource.
type Status uint8

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// State is a snapshot of a remote resource. Data keeps the last successful
// value while a reload is in flight or after it fails.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Fetcher loads the resource.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Remote runs a fetcher and records Idle → Loading → Loaded|Failed.
// Only the most recent Load may publish its result, and nothing is published
// after Close.
type Remote[T any] struct {
	name   string
	fetch  Fetcher[T]
	logger *slog.Logger

	mu     sync.Mutex
	state  State[T]
	seq    uint64
	closed bool
}

// New creates an idle resource. name labels log lines.
func New[T any](name string, fetch Fetcher[T], logger *slog.Logger) *Remote[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Remote[T]{name: name, fetch: fetch, logger: logger}
}

// Load fetches the resource and returns the state it produced. A superseded
// or closed load returns its own outcome without touching the published state.
func (r *Remote[T]) Load(ctx context.Context) State[T] {
	r.mu.Lock()
	if r.closed {
		st := r.state
		r.mu.Unlock()
		st.Err = ErrClosed
		return st
	}
	r.seq++
	seq := r.seq
	r.state.Status = Loading
	r.state.Err = nil
	r.mu.Unlock()

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.logger.WarnContext(ctx, "load failed", "resource", r.name, "error", err)
	}
	if r.closed || seq != r.seq {
		r.logger.DebugContext(ctx, "discarding stale load", "resource", r.name)
		return State[T]{Status: statusFor(err), Data: data, Err: err}
	}
	if err != nil {
		r.state.Status = Failed
		r.state.Err = err
		return r.state
	}
	r.state = State[T]{Status: Loaded, Data: data}
	return r.state
}

// Snapshot returns the current state.
func (r *Remote[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Close detaches the resource from its view; in-flight results are dropped.
func (r *Remote[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func statusFor(err error) Status {
	if err != nil {
		return Failed
	}
	return Loaded
}
