// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import (
	"context"
	"errors"
	"sync/atomic"
)

// Scope engine: sequences acquire, use, and release as one
// cancellation-aware unit. Acquisition runs masked and every acquired
// resource is tracked before cancellation can be observed again; use runs
// under restore; release is unconditional and the captured outcome is
// re-surfaced only after every finalizer ran.

const (
	scopeAcquiring uint32 = iota
	scopeInUse
	scopeReleasing
	scopeDone
)

// scope tracks one activation through Acquiring → InUse → Releasing → Done.
// Transitions are one-way; a violated transition means re-entrant or
// concurrent activation of the same reservation and panics.
type scope struct {
	state atomic.Uint32
	stack *FinalizerStack
}

func newScope() *scope {
	return &scope{stack: NewFinalizerStack()}
}

func (s *scope) transition(from, to uint32) {
	if !s.state.CompareAndSwap(from, to) {
		panic("managed: invalid scope state transition")
	}
}

// Use enters the resource's scope, applies f to the acquired value, and
// guarantees release before the outcome is surfaced. Acquisition and release
// run masked; f runs under restore, so cancellation interrupts f but never
// skips release. A failure in f surfaces only after every finalizer ran;
// finalizer failures are aggregated with it, never silently dropped.
func Use[A, B any](r Resource[A], f func(A) Effect[B]) Effect[B] {
	return Mask(func(restore Restore) Effect[B] {
		return func(ctx context.Context) (B, error) {
			var zero B
			sc := newScope()

			a, err := runReserve(ctx, restore, r, sc.stack)
			if err != nil {
				// Partial acquisition: release what was tracked, then
				// surface the acquisition error.
				sc.transition(scopeAcquiring, scopeReleasing)
				exit := classify(restore(ctx), err)
				relErr := sc.stack.Drain(ctx, exit.Outcome())
				sc.transition(scopeReleasing, scopeDone)
				return zero, settle(exit, relErr)
			}

			sc.transition(scopeAcquiring, scopeInUse)
			b, exit := runStep(restore(ctx), f, a)

			sc.transition(scopeInUse, scopeReleasing)
			relErr := sc.stack.Drain(ctx, exit.Outcome())
			sc.transition(scopeReleasing, scopeDone)

			if err := settle(exit, relErr); err != nil {
				return zero, err
			}
			return b, nil
		}
	})
}

// Bracket sequences "acquire A", "use A to produce B", and "release A given
// the outcome of use" as one cancellation-aware unit. The release action is
// registered immediately after acquire completes, while still masked, so a
// successfully acquired resource is never left untracked.
func Bracket[R, A any](
	acquire Effect[R],
	release func(R, Outcome) Effect[Unit],
	use func(R) Effect[A],
) Effect[A] {
	res := Resource[R]{reserve: func(ctx context.Context, _ Restore, stack *FinalizerStack) (R, error) {
		r, err := acquire(ctx)
		if err != nil {
			var zero R
			return zero, err
		}
		stack.Push(func(o Outcome) Effect[Unit] {
			return release(r, o)
		})
		return r, nil
	}}
	return Use(res, use)
}

// OnExit runs body and invokes the handler with the exit of body after it
// completes, whatever that exit is. The handler runs masked.
func OnExit[A any](body Effect[A], handler func(Exit) Effect[Unit]) Effect[A] {
	return Mask(func(restore Restore) Effect[A] {
		return func(ctx context.Context) (A, error) {
			a, exit := runStep(restore(ctx), func(Unit) Effect[A] { return body }, Unit{})
			if _, err := handler(exit)(ctx); err != nil {
				var zero A
				cause, _ := exit.Cause()
				var errs []error
				if cause != nil {
					errs = flattenErrors(errs, cause)
				}
				errs = flattenErrors(errs, err)
				return zero, combineErrors(errs)
			}
			if cause, ok := exit.Cause(); ok {
				var zero A
				return zero, cause
			}
			return a, nil
		}
	})
}

// OnError runs cleanup only when body fails with a typed error.
// Defects and interruption pass through untouched.
func OnError[A any](body Effect[A], cleanup func(error) Effect[Unit]) Effect[A] {
	return OnExit(body, func(e Exit) Effect[Unit] {
		if e.IsFail() {
			cause, _ := e.Cause()
			return cleanup(cause)
		}
		return PureEffect(Unit{})
	})
}

// runReserve runs the acquisition phase with panic capture. A panicking
// acquire effect becomes a defect error, so the scope still drains the
// finalizers of everything already tracked instead of leaking it.
func runReserve[A any](ctx context.Context, restore Restore, r Resource[A], stack *FinalizerStack) (a A, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newDefectError(v)
		}
	}()
	return r.reserve(ctx, restore, stack)
}

// runStep runs one use step with panic capture, classifying the result.
func runStep[A, B any](ctx context.Context, f func(A) Effect[B], a A) (b B, exit Exit) {
	defer func() {
		if v := recover(); v != nil {
			exit = ExitDefect(newDefectError(v))
		}
	}()
	b, err := f(a)(ctx)
	return b, classify(ctx, err)
}

// settle combines the use exit with the error from draining the finalizer
// stack into the error surfaced to the caller:
//   - success with clean release reports nil
//   - a release failure after success becomes the reported error
//   - a use failure with clean release is reported as-is
//   - a use failure plus release failures become one composite, the use
//     failure first, then release failures in reverse acquisition order
//   - interruption with clean release reports the cancellation error
//   - a release failure under interruption escalates to a defect
func settle(exit Exit, relErr error) error {
	cause, failed := exit.Cause()
	if !failed {
		return relErr
	}
	if relErr == nil {
		return cause
	}
	if exit.IsInterrupt() {
		var defect *DefectError
		if errors.As(relErr, &defect) {
			return relErr
		}
		return &DefectError{Value: relErr}
	}
	return combineErrors(flattenErrors(flattenErrors(nil, cause), relErr))
}
