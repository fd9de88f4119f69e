// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package managed

import "context"

// Run interprets a program and enters its scope for the duration of f.
// Every resource the program allocates is released, in reverse acquisition
// order, before Run returns.
func Run[A, B any](ctx context.Context, p Program[A], f func(A) Effect[B]) (B, error) {
	return Use(Interpret(p), f)(ctx)
}

// RunWith enters an already-interpreted resource for the duration of f.
func RunWith[A, B any](ctx context.Context, r Resource[A], f func(A) Effect[B]) (B, error) {
	return Use(r, f)(ctx)
}
