// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import "context"

// Erased represents a type-erased value in the program node chain.
// Node types use Erased parameters to process heterogeneous value types
// through a homogeneous interpretation loop. Concrete types are recovered
// via type assertions at node boundaries.
type Erased = any

// node is the interface for program tree nodes.
// Interpretation uses type switches, not tags — node is a pure marker interface.
type node interface {
	node() // unexported marker method
}

// returnNode is a pure leaf: a value that allocates nothing.
type returnNode struct {
	value Erased
}

func (returnNode) node() {}

// allocateNode acquires one resource: its effect yields the value together
// with the release action to register for it.
type allocateNode struct {
	eff func(ctx context.Context) (Erased, Finalizer, error)
}

func (*allocateNode) node() {}

// bindNode sequences a source node with a continuation from its result to
// the dependent program.
type bindNode struct {
	source node
	k      func(Erased) node
}

func (*bindNode) node() {}

// suspendNode defers program construction: its effect yields the nested
// program when the scope is entered.
type suspendNode struct {
	eff func(ctx context.Context) (node, error)
}

func (*suspendNode) node() {}

// Program is a pure, not-yet-executed description of resource construction.
// It is built eagerly as inert data and interpreted only when a scope is
// entered; no state survives the scope.
type Program[A any] struct {
	n node
}

// Allocation is the result of an Allocate effect: the acquired value together
// with its release action.
type Allocation[A any] struct {
	// Value is the acquired resource.
	Value A

	// Release is invoked exactly once when the enclosing scope exits.
	// A nil Release is treated as NopFinalizer.
	Release Finalizer
}

// Return lifts a pure value into a program that allocates nothing.
// Its release is a no-op.
func Return[A any](a A) Program[A] {
	return Program[A]{n: returnNode{value: a}}
}

// Allocate creates a program from an effect producing a value plus its
// release action. The effect runs masked when the scope is entered; the
// release is registered immediately after the effect completes.
func Allocate[A any](eff Effect[Allocation[A]]) Program[A] {
	return Program[A]{n: &allocateNode{eff: func(ctx context.Context) (Erased, Finalizer, error) {
		alloc, err := eff(ctx)
		if err != nil {
			return nil, nil, err
		}
		release := alloc.Release
		if release == nil {
			release = NopFinalizer
		}
		return alloc.Value, release, nil
	}}}
}

// Acquire creates a program from an acquire effect and an outcome-insensitive
// release function.
func Acquire[A any](acquire Effect[A], release func(A) Effect[Unit]) Program[A] {
	return Allocate(func(ctx context.Context) (Allocation[A], error) {
		a, err := acquire(ctx)
		if err != nil {
			return Allocation[A]{}, err
		}
		return Allocation[A]{
			Value:   a,
			Release: func(Outcome) Effect[Unit] { return release(a) },
		}, nil
	})
}

// Bind sequences two programs (monadic bind): it runs p, then passes the
// result to f to get the dependent program. The dependent program's resources
// release strictly before p's resource does (LIFO).
func Bind[A, B any](p Program[A], f func(A) Program[B]) Program[B] {
	if r, ok := p.n.(returnNode); ok {
		// Optimization: a pure source needs no deferred continuation
		return f(r.value.(A))
	}
	return Program[B]{n: &bindNode{
		source: p.n,
		k: func(v Erased) node {
			return f(v.(A)).n
		},
	}}
}

// Suspend creates a program from an effect that yields a nested program,
// deferring tree construction until the scope is entered.
func Suspend[A any](eff Effect[Program[A]]) Program[A] {
	return Program[A]{n: &suspendNode{eff: func(ctx context.Context) (node, error) {
		p, err := eff(ctx)
		if err != nil {
			return nil, err
		}
		return p.n, nil
	}}}
}

// Map applies a pure function to the result of a program.
func Map[A, B any](p Program[A], f func(A) B) Program[B] {
	return Bind(p, func(a A) Program[B] {
		return Return(f(a))
	})
}

// Then sequences two programs, discarding the first result.
func Then[A, B any](p Program[A], q Program[B]) Program[B] {
	return Bind(p, func(A) Program[B] {
		return q
	})
}

// Pair holds the results of two zipped programs.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// Zip sequences two programs and pairs their results.
// q's resources release before p's (LIFO).
func Zip[A, B any](p Program[A], q Program[B]) Program[Pair[A, B]] {
	return Bind(p, func(a A) Program[Pair[A, B]] {
		return Map(q, func(b B) Pair[A, B] {
			return Pair[A, B]{Fst: a, Snd: b}
		})
	})
}
