package recovery

import (
	"sync"

	"github.com/agrifield/advisor/internal/core/domain"
)

// DefaultHistorySize bounds the in-process error history.
const DefaultHistorySize = 500

// History is a bounded ring buffer of recently handled errors.
// Older entries are overwritten once the buffer is full.
type History struct {
	mu   sync.Mutex
	buf  []domain.ErrorContext
	next int
	full bool
}

// NewHistory creates a history with the given capacity.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{buf: make([]domain.ErrorContext, size)}
}

// Append records an error context, evicting the oldest entry when
// the buffer is full.
func (h *History) Append(ec domain.ErrorContext) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf[h.next] = ec
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.full {
		return len(h.buf)
	}
	return h.next
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) []domain.ErrorContext {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := h.next
	if h.full {
		count = len(h.buf)
	}
	if n <= 0 || n > count {
		n = count
	}

	out := make([]domain.ErrorContext, 0, n)
	for i := 1; i <= n; i++ {
		idx := (h.next - i + len(h.buf)) % len(h.buf)
		out = append(out, h.buf[idx])
	}
	return out
}
