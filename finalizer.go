// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import (
	"context"
	"sync"
	"sync/atomic"
)

// Finalizer is a registered release action awaiting later invocation.
// It receives the outcome of the scope's use step and yields the cleanup
// effect to run. Each finalizer is invoked exactly once.
type Finalizer func(Outcome) Effect[Unit]

// NopFinalizer is the release action of resources that need no cleanup,
// such as pure values.
func NopFinalizer(Outcome) Effect[Unit] {
	return func(context.Context) (Unit, error) {
		return Unit{}, nil
	}
}

// FinalizerStack is an ordered collection of release actions accumulated
// during acquisition and drained in reverse order at teardown.
//
// A stack is exclusively owned by one scope activation. Drain is affine:
// it may run at most once, and pushing after the drain panics.
type FinalizerStack struct {
	drained atomic.Uintptr

	mu      sync.Mutex
	entries []Finalizer
}

// NewFinalizerStack creates an empty finalizer stack.
func NewFinalizerStack() *FinalizerStack {
	return &FinalizerStack{}
}

// Push appends a release action in acquisition order.
// Panics if the stack has already been drained.
func (s *FinalizerStack) Push(f Finalizer) {
	if s.drained.Load() != 0 {
		panic("managed: finalizer pushed after drain")
	}
	s.mu.Lock()
	s.entries = append(s.entries, f)
	s.mu.Unlock()
}

// Len returns the number of registered finalizers.
func (s *FinalizerStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Drain invokes every registered finalizer in reverse acquisition order,
// passing the outcome of the scope. Every entry runs even if earlier entries
// failed; panics inside a finalizer are captured as defects. Failures are
// aggregated: zero yields nil, exactly one is returned as-is, several are
// retained together in reverse acquisition order.
//
// Drain may run at most once; a second call panics.
func (s *FinalizerStack) Drain(ctx context.Context, o Outcome) error {
	if s.drained.Add(1) != 1 {
		panic("managed: finalizer stack drained twice")
	}
	s.mu.Lock()
	entries := s.entries
	s.entries = nil
	s.mu.Unlock()

	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		if err := runFinalizer(ctx, entries[i], o); err != nil {
			errs = append(errs, err)
		}
	}
	return combineErrors(errs)
}

// runFinalizer runs one release action with panic capture.
func runFinalizer(ctx context.Context, f Finalizer, o Outcome) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newDefectError(v)
		}
	}()
	_, err = f(o)(ctx)
	return err
}
