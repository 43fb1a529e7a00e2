// ABOUTME: Tests for toast buffering, drain semantics and overflow behavior
// ABOUTME: Overflow must drop the oldest toast, never block a dispatcher

package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishAndDrain(t *testing.T) {
	h := NewHub()
	h.Publish(Success, "book %q created", "Dune")
	h.Publish(Error, "delete failed")

	toasts := h.Drain()
	require.Len(t, toasts, 2)
	assert.Equal(t, Success, toasts[0].Level)
	assert.Equal(t, `book "Dune" created`, toasts[0].Message)
	assert.Equal(t, Error, toasts[1].Level)

	assert.Empty(t, h.Drain(), "drain empties the buffer")
}

func TestHub_OverflowDropsOldest(t *testing.T) {
	h := NewHub()
	for i := 0; i < defaultCapacity+3; i++ {
		h.Publish(Info, "toast %d", i)
	}

	toasts := h.Drain()
	require.Len(t, toasts, defaultCapacity)
	assert.Equal(t, "toast 3", toasts[0].Message)
	assert.Equal(t, fmt.Sprintf("toast %d", defaultCapacity+2), toasts[len(toasts)-1].Message)
}
