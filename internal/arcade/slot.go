package arcade

import (
	"sync"

	"github.com/shotclock/backend/internal/game"
)

// frameSlot holds at most one pending frame. A newer frame replaces an
// unconsumed one; frames are never queued.
type frameSlot struct {
	mu    sync.Mutex
	frame *game.Frame
}

// Put stores f and reports whether it replaced a pending frame.
func (s *frameSlot) Put(f *game.Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := s.frame != nil
	s.frame = f
	return replaced
}

// Take empties the slot.
func (s *frameSlot) Take() *game.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.frame
	s.frame = nil
	return f
}
