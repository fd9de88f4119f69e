// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import (
	"fmt"
	"runtime"
	"strings"
)

// DefectError represents an unexpected failure: a panic recovered from a use
// step or a finalizer, or a finalizer failure escalated while the primary
// outcome was cancellation.
type DefectError struct {
	// Value is the original value passed to panic(), or the escalated error.
	Value any

	// Stack is the goroutine stack trace captured at the point of the defect.
	Stack string
}

// Error returns a human-readable representation of the defect,
// including the value and the captured stack trace.
func (e *DefectError) Error() string {
	if e.Stack == "" {
		return fmt.Sprintf("defect: %v", e.Value)
	}
	return fmt.Sprintf("defect: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the wrapped error when the defect value is itself an error.
func (e *DefectError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newDefectError(v any) *DefectError {
	// 8 KiB is enough for most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &DefectError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// CompositeError holds several failures from one scope teardown: the use
// failure first, if any, then finalizer failures in reverse acquisition order.
type CompositeError struct {
	Errs []error
}

// Error joins the messages of all retained failures.
func (e *CompositeError) Error() string {
	parts := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		parts[i] = err.Error()
	}
	return "multiple failures: " + strings.Join(parts, "; ")
}

// Unwrap exposes the retained failures to errors.Is and errors.As.
func (e *CompositeError) Unwrap() []error {
	return e.Errs
}

// combineErrors aggregates collected failures: zero yields nil, exactly one
// is returned as-is, several are retained together in collection order.
func combineErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &CompositeError{Errs: errs}
	}
}

// flattenErrors appends err to dst, splicing CompositeError members so that
// nested aggregation never produces a composite of composites.
func flattenErrors(dst []error, err error) []error {
	if comp, ok := err.(*CompositeError); ok {
		return append(dst, comp.Errs...)
	}
	return append(dst, err)
}
