// Package readiness coordinates independently loading sources and notifies
// dependents once, when the last tracked source reports ready.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrDuplicateSource indicates a source name registered twice.
	ErrDuplicateSource = errors.New("barrier: duplicate source")
	// ErrUnknownSource indicates a ready signal for an unregistered source.
	ErrUnknownSource = errors.New("barrier: unknown source")
	// ErrSealed indicates a registration after the barrier has fired.
	ErrSealed = errors.New("barrier: already fired")
)

// Barrier tracks a named set of sources. It fires exactly once, at the
// transition into "every tracked source ready". Safe for concurrent use.
//
// An empty barrier never fires: register sources before starting their loads.
type Barrier struct {
	mu        sync.Mutex
	tracked   map[string]bool
	pending   int
	fired     bool
	done      chan struct{}
	callbacks []func()
}

func New() *Barrier {
	return &Barrier{
		tracked: make(map[string]bool),
		done:    make(chan struct{}),
	}
}

// Register adds a source in the not-ready state.
func (b *Barrier) Register(name string) error {
	if name == "" {
		return errors.New("barrier: empty source name")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fired {
		return ErrSealed
	}
	if _, exists := b.tracked[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, name)
	}
	b.tracked[name] = false
	b.pending++
	return nil
}

// MarkReady records that name finished loading. Repeated calls for the same
// source have no effect. When the call completes the set, registered
// callbacks run on the calling goroutine after the lock is released.
func (b *Barrier) MarkReady(name string) error {
	b.mu.Lock()
	ready, ok := b.tracked[name]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	if ready {
		b.mu.Unlock()
		return nil
	}

	b.tracked[name] = true
	b.pending--

	var fire []func()
	if b.pending == 0 && !b.fired {
		b.fired = true
		close(b.done)
		fire = b.callbacks
		b.callbacks = nil
	}
	b.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
	return nil
}

// AllReady reports whether the barrier has fired.
func (b *Barrier) AllReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fired
}

// OnAllReady registers fn to run when the barrier fires. If it already has,
// fn runs immediately on the calling goroutine.
func (b *Barrier) OnAllReady(fn func()) {
	b.mu.Lock()
	if b.fired {
		b.mu.Unlock()
		fn()
		return
	}
	b.callbacks = append(b.callbacks, fn)
	b.mu.Unlock()
}

// Done returns a channel closed when the barrier fires.
func (b *Barrier) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the barrier fires or ctx is done.
func (b *Barrier) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of every tracked source and its readiness.
func (b *Barrier) Status() map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.tracked)
}

// Pending returns the sorted names of sources not yet ready.
func (b *Barrier) Pending() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var names []string
	for name, ready := range b.tracked {
		if !ready {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
