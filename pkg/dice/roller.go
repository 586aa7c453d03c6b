package dice

import (
	"math/rand/v2"
	"sync"
)

// Roller draws one die face uniformly from [1, sides].
type Roller interface {
	Roll(sides int) int
}

// RollerFunc adapts a function to the Roller interface.
type RollerFunc func(sides int) int

func (f RollerFunc) Roll(sides int) int { return f(sides) }

// DefaultRoller returns a Roller backed by the process-wide generator,
// which is safe for concurrent use.
func DefaultRoller() Roller {
	return RollerFunc(func(sides int) int {
		return rand.IntN(sides) + 1
	})
}

// SeededRoller is a deterministic Roller. It is safe for concurrent use.
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRoller creates a Roller whose sequence is fixed by seed.
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *SeededRoller) Roll(sides int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(sides) + 1
}
