// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import "context"

// Unit is the result type of effects run only for their side effects.
type Unit = struct{}

// Effect is a context-aware computation producing a value of type A.
// Effects are expected to observe ctx cancellation at their own suspension
// points and report it through the returned error (context.Canceled or
// context.DeadlineExceeded).
type Effect[A any] func(ctx context.Context) (A, error)

// PureEffect lifts a value into an effect that cannot fail.
func PureEffect[A any](a A) Effect[A] {
	return func(context.Context) (A, error) {
		return a, nil
	}
}

// FailEffect lifts an error into an effect that always fails.
func FailEffect[A any](err error) Effect[A] {
	return func(context.Context) (A, error) {
		var zero A
		return zero, err
	}
}

// Cleanup adapts a plain context function into an Effect[Unit].
// Release actions are usually written with it.
func Cleanup(f func(ctx context.Context) error) Effect[Unit] {
	return func(ctx context.Context) (Unit, error) {
		return Unit{}, f(ctx)
	}
}

// Restore re-enables cancellation inside a masked region.
// It maps the masked context back to the context as it was at mask entry,
// so specific sub-steps can run cancellably while the surrounding region
// stays masked.
type Restore func(ctx context.Context) context.Context

// Mask runs the effect produced by f in a masked region: cancellation
// requests against the original context are deferred for the whole region,
// except for sub-steps the effect explicitly runs under the provided restore.
//
// Values attached to the original context remain visible inside the region.
func Mask[A any](f func(restore Restore) Effect[A]) Effect[A] {
	return func(ctx context.Context) (A, error) {
		restore := func(context.Context) context.Context { return ctx }
		return f(restore)(context.WithoutCancel(ctx))
	}
}
