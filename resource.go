// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import (
	"context"
	"errors"
)

// Resource wraps logic to produce a realized reservation on demand.
// It represents how to enter a scope, not a scope already entered.
// A resource is intended for one entry/exit cycle at a time, not for
// concurrent re-entrant activation of the same reservation.
type Resource[A any] struct {
	// reserve acquires into the scope owning stack. Finalizers for
	// everything acquired are pushed in acquisition order; ctx is the
	// scope's masked context.
	reserve func(ctx context.Context, restore Restore, stack *FinalizerStack) (A, error)
}

// Reservation is a realized (acquire, release) pair for one resource
// instance. Release is invoked exactly once, with the outcome of the
// scope's use step.
type Reservation[A any] struct {
	Acquire Effect[A]
	Release Finalizer
}

// FromReservation wraps an existing reservation as a resource.
func FromReservation[A any](res Reservation[A]) Resource[A] {
	return Resource[A]{reserve: func(ctx context.Context, _ Restore, stack *FinalizerStack) (A, error) {
		a, err := res.Acquire(ctx)
		if err != nil {
			var zero A
			return zero, err
		}
		stack.Push(res.Release)
		return a, nil
	}}
}

// Reservation realizes the resource as a single (acquire, release) pair
// backed by a fresh finalizer stack. Acquire runs masked; Release drains the
// stack in reverse acquisition order and is affine. The pair is valid for
// one entry/exit cycle.
func (r Resource[A]) Reservation() Reservation[A] {
	stack := NewFinalizerStack()
	return Reservation[A]{
		Acquire: Mask(func(restore Restore) Effect[A] {
			return func(ctx context.Context) (A, error) {
				return runReserve(ctx, restore, r, stack)
			}
		}),
		Release: func(o Outcome) Effect[Unit] {
			return func(ctx context.Context) (Unit, error) {
				return Unit{}, stack.Drain(ctx, o)
			}
		},
	}
}

// OrElse selects between two equivalent resources by first success: it
// attempts primary, and if primary fails to acquire it rolls back primary's
// partial acquisitions and attempts fallback instead.
//
// First-success selection is lossy: when fallback succeeds, the failure
// detail of the rejected primary is discarded. Cancellation during primary
// acquisition is not retried against fallback.
func OrElse[A any](primary, fallback Resource[A]) Resource[A] {
	return Resource[A]{reserve: func(ctx context.Context, restore Restore, stack *FinalizerStack) (A, error) {
		a, err := tryReserve(ctx, restore, stack, primary)
		if err == nil {
			return a, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			var zero A
			return zero, err
		}
		return tryReserve(ctx, restore, stack, fallback)
	}}
}

// tryReserve acquires r into a child stack of its own. On success the child
// is spliced into the parent as a single finalizer, preserving LIFO order
// relative to the parent's other entries; on failure the child is drained
// with the failing outcome before the error is returned.
func tryReserve[A any](ctx context.Context, restore Restore, parent *FinalizerStack, r Resource[A]) (A, error) {
	child := NewFinalizerStack()
	a, err := runReserve(ctx, restore, r, child)
	if err != nil {
		var zero A
		if derr := child.Drain(ctx, classify(restore(ctx), err).Outcome()); derr != nil {
			return zero, combineErrors(flattenErrors([]error{err}, derr))
		}
		return zero, err
	}
	parent.Push(func(o Outcome) Effect[Unit] {
		return func(ctx context.Context) (Unit, error) {
			return Unit{}, child.Drain(ctx, o)
		}
	})
	return a, nil
}
