// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package managed provides scoped resource acquisition with guaranteed
// release in Go.
//
// The core type [Program] is a pure, not-yet-executed description of resource
// construction. Interpreting a program yields a [Resource]; entering that
// resource's scope acquires everything the program describes and guarantees
// that every acquired resource is released exactly once, in exact reverse
// acquisition order, whether the scope ends in success, failure, or
// cancellation.
//
// # Design Philosophy
//
// managed provides:
//   - An inert algebraic construction tree interpreted with an explicit
//     work list (deep Bind chains consume heap, not goroutine stack)
//   - A masked bracket primitive built on context cancellation, with a
//     restore escape hatch for cancellable sub-steps
//   - Ordered finalizer bookkeeping with affine (exactly-once) teardown
//
// # Programs
//
// A program is one of three variants:
//
//   - [Allocate]: an effect producing a value plus its release action
//   - [Bind]: sequential composition — the dependent program's resources
//     release before the source's (LIFO)
//   - [Suspend]: an effect yielding a nested program, deferring tree
//     construction until scope entry
//
// [Return] lifts a pure value into a program whose release is a no-op.
// [Map], [Then], [Zip], and [Acquire] are derived constructors.
//
// # Interpretation and Scopes
//
//   - [Interpret]: convert a [Program] into a [Resource]
//   - [Resource.Reservation]: realize a single (acquire, release) pair
//   - [Use]: enter a resource's scope for the duration of a function
//   - [Run], [RunWith]: one-call interpret-and-use entry points
//   - [OrElse]: first-success selection between two equivalent resources
//     (lossy: the rejected branch's failure detail is discarded)
//
// # Bracket
//
// [Bracket] sequences "acquire, use, release" as one cancellation-aware
// unit. Acquisition runs masked; the release action is registered on the
// scope's [FinalizerStack] immediately after acquire completes, while still
// masked, so a successfully acquired resource is never left untracked. The
// use step runs under restore: cancellation interrupts it but never skips
// its paired release. The use outcome is re-surfaced only after every
// finalizer ran. [OnExit] and [OnError] are the exit-observing variants.
//
// # Outcomes and Exits
//
// Finalizers receive an [Outcome] — Success, Failure(error), or Canceled —
// so cleanup can react differently to how the use step ended. [Exit] is the
// richer vocabulary exposed to peer scope abstractions: success, typed
// failure, unexpected defect, or external interruption. [Exit.Outcome] and
// [ExitFromOutcome] translate between the two; the translation is total and
// lossless for every state this package produces.
//
// # Error Aggregation
//
// A failure in the use step propagates as the scope's final outcome only
// after every finalizer has run. Finalizer failures never silently overwrite
// it: all failures are retained in a single [CompositeError], the use failure
// first, then release failures in reverse acquisition order. Panics in use
// steps and finalizers are captured as [DefectError]. A finalizer failing
// while the primary outcome was cancellation escalates to a defect; callers
// requiring full insulation must add their own masking layer.
//
// # Masking
//
// [Mask] runs an effect in a masked region where cancellation requests
// against the original context are deferred, built on context.WithoutCancel.
// The provided [Restore] maps the masked context back to the context as it
// was at mask entry, re-enabling cancellation for specific sub-steps.
//
// # Example
//
//	p := managed.Bind(
//		managed.Acquire(openConn, closeConn),
//		func(conn *Conn) managed.Program[*Session] {
//			return managed.Acquire(
//				func(ctx context.Context) (*Session, error) { return conn.NewSession(ctx) },
//				func(s *Session) managed.Effect[managed.Unit] {
//					return managed.Cleanup(s.Close)
//				},
//			)
//		},
//	)
//
//	result, err := managed.Run(ctx, p, func(s *Session) managed.Effect[string] {
//		return s.Query("...")
//	})
//	// The session closes before the connection, under every outcome.
package managed
