// internal/auth/context.go
//
// Request-context carrier for State.
//
// Usage
// -----
//     // Session middleware attaches the decoded state.
//     ctx = auth.WithState(ctx, st)
//
//     // Handlers and views read it back.
//     st := auth.FromContext(ctx)   // zero State when absent
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package auth

import "context"

// stateKey is unexported to avoid context-key collisions.
type stateKey struct{}

// WithState returns a new context carrying st.
func WithState(ctx context.Context, st State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

// FromContext extracts the State from ctx.  It returns the signed-out
// state when none is set.
func FromContext(ctx context.Context) State {
	st, _ := ctx.Value(stateKey{}).(State)
	return st
}
