// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

// Outcome classifies how the use step of a scope ended.
// It is the vocabulary finalizers receive, so cleanup can react differently
// to success, failure, and cancellation.

type outcomeKind uint8

const (
	outcomeSuccess outcomeKind = iota
	outcomeFailure
	outcomeCanceled
)

// Outcome is a tagged union: Success, Failure(error), or Canceled.
// The zero value is Success.
type Outcome struct {
	kind outcomeKind
	err  error
}

// Success creates the successful outcome.
func Success() Outcome {
	return Outcome{kind: outcomeSuccess}
}

// Failure creates a failed outcome carrying the error from the use step.
// A nil error is normalized to Success.
func Failure(err error) Outcome {
	if err == nil {
		return Outcome{kind: outcomeSuccess}
	}
	return Outcome{kind: outcomeFailure, err: err}
}

// Canceled creates the outcome for a scope torn down by cancellation.
// Cancellation is not a failure.
func Canceled() Outcome {
	return Outcome{kind: outcomeCanceled}
}

// IsSuccess returns true if the use step completed normally.
func (o Outcome) IsSuccess() bool {
	return o.kind == outcomeSuccess
}

// IsFailure returns true if the use step failed with an error.
func (o Outcome) IsFailure() bool {
	return o.kind == outcomeFailure
}

// IsCanceled returns true if the scope was torn down by cancellation.
func (o Outcome) IsCanceled() bool {
	return o.kind == outcomeCanceled
}

// GetFailure returns the failure error and true, or nil and false.
func (o Outcome) GetFailure() (error, bool) {
	if o.kind == outcomeFailure {
		return o.err, true
	}
	return nil, false
}

// String returns a short human-readable tag for logging and tests.
func (o Outcome) String() string {
	switch o.kind {
	case outcomeFailure:
		return "failure(" + o.err.Error() + ")"
	case outcomeCanceled:
		return "canceled"
	default:
		return "success"
	}
}

// MatchOutcome pattern matches on the outcome.
func MatchOutcome[T any](o Outcome, onSuccess func() T, onFailure func(error) T, onCanceled func() T) T {
	switch o.kind {
	case outcomeFailure:
		return onFailure(o.err)
	case outcomeCanceled:
		return onCanceled()
	default:
		return onSuccess()
	}
}
