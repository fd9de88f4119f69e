// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/managed"
)

func TestExitConstructorsAndPredicates(t *testing.T) {
	boom := errors.New("boom")

	if e := managed.ExitSuccess(); !e.IsSuccess() {
		t.Fatal("expected success exit")
	}
	if e := managed.ExitFail(boom); !e.IsFail() {
		t.Fatal("expected fail exit")
	}
	if e := managed.ExitDefect(boom); !e.IsDefect() {
		t.Fatal("expected defect exit")
	}
	if e := managed.ExitInterrupt(context.Canceled); !e.IsInterrupt() {
		t.Fatal("expected interrupt exit")
	}

	var zero managed.Exit
	if !zero.IsSuccess() {
		t.Fatal("zero value should be success")
	}
}

func TestExitCause(t *testing.T) {
	boom := errors.New("boom")

	if cause, ok := managed.ExitSuccess().Cause(); ok || cause != nil {
		t.Fatalf("success cause: got (%v, %v)", cause, ok)
	}
	if cause, ok := managed.ExitFail(boom).Cause(); !ok || cause != boom {
		t.Fatalf("fail cause: got (%v, %v)", cause, ok)
	}
	if cause, ok := managed.ExitInterrupt(nil).Cause(); !ok || !errors.Is(cause, context.Canceled) {
		t.Fatalf("interrupt with nil cause should default to context.Canceled, got %v", cause)
	}
}

func TestExitToOutcome(t *testing.T) {
	boom := errors.New("boom")

	if o := managed.ExitSuccess().Outcome(); !o.IsSuccess() {
		t.Fatal("success exit should map to success outcome")
	}
	o := managed.ExitFail(boom).Outcome()
	if err, ok := o.GetFailure(); !ok || err != boom {
		t.Fatalf("fail exit should map to failure outcome, got %v", o)
	}
	o = managed.ExitDefect(boom).Outcome()
	if err, ok := o.GetFailure(); !ok || err != boom {
		t.Fatalf("defect exit should map to failure outcome, got %v", o)
	}
	if o := managed.ExitInterrupt(context.Canceled).Outcome(); !o.IsCanceled() {
		t.Fatal("interrupt exit should map to canceled outcome")
	}
}

func TestExitFromOutcome(t *testing.T) {
	boom := errors.New("boom")

	if e := managed.ExitFromOutcome(managed.Success()); !e.IsSuccess() {
		t.Fatal("success outcome should map to success exit")
	}
	if e := managed.ExitFromOutcome(managed.Failure(boom)); !e.IsFail() {
		t.Fatal("plain failure should map to fail exit")
	}

	defect := &managed.DefectError{Value: "broken"}
	if e := managed.ExitFromOutcome(managed.Failure(defect)); !e.IsDefect() {
		t.Fatal("defect failure should map to defect exit")
	}

	e := managed.ExitFromOutcome(managed.Canceled())
	if !e.IsInterrupt() {
		t.Fatal("canceled outcome should map to interrupt exit")
	}
}

// TestExitOutcomeRoundTrip: for every outcome the core produces,
// ExitFromOutcome(o).Outcome() preserves the classification and the error.
func TestExitOutcomeRoundTrip(t *testing.T) {
	boom := errors.New("boom")
	defect := &managed.DefectError{Value: "broken"}

	outcomes := []managed.Outcome{
		managed.Success(),
		managed.Failure(boom),
		managed.Failure(defect),
		managed.Canceled(),
	}
	for _, o := range outcomes {
		back := managed.ExitFromOutcome(o).Outcome()
		if back.IsSuccess() != o.IsSuccess() ||
			back.IsFailure() != o.IsFailure() ||
			back.IsCanceled() != o.IsCanceled() {
			t.Fatalf("round trip changed classification: %v -> %v", o, back)
		}
		wantErr, _ := o.GetFailure()
		gotErr, _ := back.GetFailure()
		if wantErr != gotErr {
			t.Fatalf("round trip changed error: %v -> %v", wantErr, gotErr)
		}
	}
}
