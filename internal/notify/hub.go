// ABOUTME: Transient user-facing notifications (toasts) independent of store state
// ABOUTME: Bounded buffer with drop-oldest; views drain and render, nothing persists

package notify

import (
	"fmt"
	"sync"
	"time"
)

// Level classifies a toast for rendering.
type Level int

const (
	Info Level = iota
	Success
	Error
)

// Toast is one short-lived user-visible message.
type Toast struct {
	Level   Level
	Message string
	At      time.Time
}

const defaultCapacity = 64

// Hub buffers toasts between dispatchers and views. When the buffer is
// full the oldest toast is dropped; toasts are transient by contract.
type Hub struct {
	mu  sync.Mutex
	buf []Toast
	cap int
}

// NewHub creates a hub with the default capacity.
func NewHub() *Hub {
	return &Hub{cap: defaultCapacity}
}

// Publish appends a toast.
func (h *Hub) Publish(level Level, format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buf) >= h.cap {
		h.buf = h.buf[1:]
	}
	h.buf = append(h.buf, Toast{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		At:      time.Now(),
	})
}

// Drain returns all buffered toasts and empties the buffer.
func (h *Hub) Drain() []Toast {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.buf
	h.buf = nil
	return out
}
