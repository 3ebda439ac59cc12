package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocationStack(t *testing.T) {
	ctx := context.Background()

	t.Run("empty stack means direct invocation", func(t *testing.T) {
		_, ok := CallerFrame(ctx)
		assert.False(t, ok)
		assert.Equal(t, 0, InvocationDepth(ctx))
	})

	t.Run("pushed frame is visible as caller", func(t *testing.T) {
		inner := PushInvocation(ctx, Invocation{Module: ModulePayments, Authority: "sub_1"})
		frame, ok := CallerFrame(inner)
		require.True(t, ok)
		assert.Equal(t, ModulePayments, frame.Module)
		assert.Equal(t, "sub_1", frame.Authority)
		assert.Equal(t, 1, InvocationDepth(inner))
	})

	t.Run("nested pushes expose the top frame only", func(t *testing.T) {
		c1 := PushInvocation(ctx, Invocation{Module: ModulePayments, Authority: "sub_1"})
		c2 := PushInvocation(c1, Invocation{Module: ModuleRegistry, Authority: "mcht_1"})

		frame, ok := CallerFrame(c2)
		require.True(t, ok)
		assert.Equal(t, ModuleRegistry, frame.Module)
		assert.Equal(t, 2, InvocationDepth(c2))

		// The outer context is untouched.
		frame, ok = CallerFrame(c1)
		require.True(t, ok)
		assert.Equal(t, ModulePayments, frame.Module)
	})
}
