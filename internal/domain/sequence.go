package domain

import "sync/atomic"

// Sequence hands out consecutive indexes for record kinds that have no
// intrinsic numeric identifier. One Sequence belongs to one load attempt.
type Sequence struct {
	next atomic.Uint32
}

// NewSequence creates a sequence whose first value is start.
func NewSequence(start uint32) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

// Next returns the current value and advances the sequence.
func (s *Sequence) Next() uint32 {
	return s.next.Add(1) - 1
}

// Peek returns the value the next call to Next will return.
func (s *Sequence) Peek() uint32 {
	return s.next.Load()
}
