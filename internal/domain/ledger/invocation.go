package ledger

import "context"

// Module names used on invocation frames.
const (
	ModulePayments = "payments"
	ModuleRegistry = "registry"
)

// Invocation is one frame on the call stack. Operations that must only run
// when triggered by another module inspect the top frame instead of trusting
// request input.
type Invocation struct {
	// Module is the calling module's name.
	Module string
	// Authority is the address the calling module acted for.
	Authority string
}

type invocationKey struct{}

// PushInvocation returns a context whose invocation stack has frame on top.
func PushInvocation(ctx context.Context, frame Invocation) context.Context {
	stack := invocationStack(ctx)
	next := make([]Invocation, len(stack)+1)
	copy(next, stack)
	next[len(stack)] = frame
	return context.WithValue(ctx, invocationKey{}, next)
}

// CallerFrame returns the top invocation frame, if any. A false result means
// the operation was invoked directly rather than by another module.
func CallerFrame(ctx context.Context) (Invocation, bool) {
	stack := invocationStack(ctx)
	if len(stack) == 0 {
		return Invocation{}, false
	}
	return stack[len(stack)-1], true
}

// InvocationDepth reports how many frames deep the current call is.
func InvocationDepth(ctx context.Context) int {
	return len(invocationStack(ctx))
}

func invocationStack(ctx context.Context) []Invocation {
	if stack, ok := ctx.Value(invocationKey{}).([]Invocation); ok {
		return stack
	}
	return nil
}
