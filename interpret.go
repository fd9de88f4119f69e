// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import "context"

// Interpret converts a program into a resource by structural recursion over
// the node tree. The returned resource, when entered, runs acquisition
// through the scope engine: every allocation's release is pushed onto the
// scope's finalizer stack immediately after its acquire effect completes.
func Interpret[A any](p Program[A]) Resource[A] {
	return Resource[A]{reserve: func(ctx context.Context, restore Restore, stack *FinalizerStack) (A, error) {
		v, err := reserveNodes(ctx, restore, stack, p.n)
		if err != nil {
			var zero A
			return zero, err
		}
		return v.(A), nil
	}}
}

// reserveNodes walks the node tree iteratively with an explicit continuation
// list, so arbitrarily deep Bind chains consume heap, not goroutine stack.
//
// ctx is the masked context of the enclosing scope: no cancellation fires
// between an acquire effect completing and its finalizer being pushed. A
// cancellation pending on the restored context stops the walk before the
// next acquisition begins; resources already tracked stay on the stack for
// the scope's teardown to drain.
func reserveNodes(ctx context.Context, restore Restore, stack *FinalizerStack, root node) (Erased, error) {
	var (
		current Erased
		conts   []func(Erased) node
	)
	cur := root
	for {
		switch t := cur.(type) {
		case returnNode:
			current = t.value
		case *bindNode:
			conts = append(conts, t.k)
			cur = t.source
			continue
		case *suspendNode:
			next, err := t.eff(ctx)
			if err != nil {
				return nil, err
			}
			cur = next
			continue
		case *allocateNode:
			if err := restore(ctx).Err(); err != nil {
				return nil, err
			}
			v, release, err := t.eff(ctx)
			if err != nil {
				return nil, err
			}
			stack.Push(release)
			current = v
		default:
			panic("managed: unknown node type in program")
		}
		if len(conts) == 0 {
			return current, nil
		}
		k := conts[len(conts)-1]
		conts = conts[:len(conts)-1]
		cur = k(current)
	}
}
