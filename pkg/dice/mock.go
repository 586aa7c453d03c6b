package dice

import "sync"

// SequenceRoller returns queued values in order, then falls back to Fallback
// (or 1) once the queue is empty. Used in tests.
type SequenceRoller struct {
	mu       sync.Mutex
	values   []int
	Fallback Roller
	Calls    []int // sides requested, in call order
}

// NewSequenceRoller creates a SequenceRoller that replays values.
func NewSequenceRoller(values ...int) *SequenceRoller {
	return &SequenceRoller{values: values}
}

func (s *SequenceRoller) Roll(sides int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, sides)
	if len(s.values) > 0 {
		v := s.values[0]
		s.values = s.values[1:]
		return v
	}
	if s.Fallback != nil {
		return s.Fallback.Roll(sides)
	}
	return 1
}
