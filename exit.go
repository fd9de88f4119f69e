// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import (
	"context"
	"errors"
)

// Exit is the richer outcome vocabulary exposed to peer scope abstractions:
// success, typed failure, unexpected defect, or external interruption.
// The translation to and from [Outcome] is total, and lossless for every
// state this package produces.

type exitKind uint8

const (
	exitSuccess exitKind = iota
	exitFail
	exitDefect
	exitInterrupt
)

// Exit is a tagged union: Success, Fail(error), Defect(error), or Interrupt.
// The zero value is Success.
type Exit struct {
	kind exitKind
	err  error
}

// ExitSuccess creates the successful exit.
func ExitSuccess() Exit {
	return Exit{kind: exitSuccess}
}

// ExitFail creates an exit for a typed, expected failure.
func ExitFail(err error) Exit {
	return Exit{kind: exitFail, err: err}
}

// ExitDefect creates an exit for an unexpected failure, such as a recovered
// panic or a release action failing under cancellation.
func ExitDefect(err error) Exit {
	return Exit{kind: exitDefect, err: err}
}

// ExitInterrupt creates an exit for external interruption, carrying the
// cancellation cause.
func ExitInterrupt(cause error) Exit {
	if cause == nil {
		cause = context.Canceled
	}
	return Exit{kind: exitInterrupt, err: cause}
}

// IsSuccess returns true for a successful exit.
func (e Exit) IsSuccess() bool { return e.kind == exitSuccess }

// IsFail returns true for a typed, expected failure.
func (e Exit) IsFail() bool { return e.kind == exitFail }

// IsDefect returns true for an unexpected failure.
func (e Exit) IsDefect() bool { return e.kind == exitDefect }

// IsInterrupt returns true for external interruption.
func (e Exit) IsInterrupt() bool { return e.kind == exitInterrupt }

// Cause returns the carried error and true, or nil and false for success.
func (e Exit) Cause() (error, bool) {
	if e.kind == exitSuccess {
		return nil, false
	}
	return e.err, true
}

// Outcome translates the exit into the three-state vocabulary finalizers
// receive. Fail and Defect both map to Failure, keeping the original error;
// Interrupt maps to Canceled.
func (e Exit) Outcome() Outcome {
	switch e.kind {
	case exitFail, exitDefect:
		return Failure(e.err)
	case exitInterrupt:
		return Canceled()
	default:
		return Success()
	}
}

// ExitFromOutcome translates the three-state vocabulary back into an exit.
// A Failure carrying a *DefectError becomes Defect; Canceled becomes
// Interrupt with context.Canceled as its cause.
func ExitFromOutcome(o Outcome) Exit {
	switch o.kind {
	case outcomeFailure:
		var defect *DefectError
		if errors.As(o.err, &defect) {
			return ExitDefect(o.err)
		}
		return ExitFail(o.err)
	case outcomeCanceled:
		return ExitInterrupt(context.Canceled)
	default:
		return ExitSuccess()
	}
}

// classify derives the exit of a completed step from its error, using ctx to
// recognize interruption that effects report through their own error chains.
func classify(ctx context.Context, err error) Exit {
	if err == nil {
		return ExitSuccess()
	}
	var defect *DefectError
	if errors.As(err, &defect) {
		return ExitDefect(err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ExitInterrupt(err)
	}
	if cause := context.Cause(ctx); cause != nil && errors.Is(err, cause) {
		return ExitInterrupt(err)
	}
	return ExitFail(err)
}
