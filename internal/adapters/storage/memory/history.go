package memory

import (
	"sync"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

// DefaultHistoryCapacity keeps the last four user/assistant pairs.
const DefaultHistoryCapacity = 8

// History is a bounded, in-memory conversation buffer. When an append goes
// over capacity the oldest messages are dropped first.
type History struct {
	mu       sync.RWMutex
	capacity int
	messages []domain.Message
}

// NewHistory creates a History. A capacity below 1 uses DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		capacity: capacity,
		messages: make([]domain.Message, 0, capacity),
	}
}

func (h *History) Append(msgs ...domain.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, msgs...)
	if over := len(h.messages) - h.capacity; over > 0 {
		kept := make([]domain.Message, h.capacity)
		copy(kept, h.messages[over:])
		h.messages = kept
	}
}

// Snapshot returns a copy of the buffer in insertion order.
func (h *History) Snapshot() []domain.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

func (h *History) Capacity() int {
	return h.capacity
}
