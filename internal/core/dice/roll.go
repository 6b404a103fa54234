// Package dice draws the bounded integers behind enemy damage and movement.
package dice

import "math/rand"

// Source is the random source dice draw from. *rand.Rand satisfies it, and
// Sequence provides a deterministic replacement for tests.
type Source interface {
	// Intn returns an integer in [0, n). n must be positive.
	Intn(n int) int
}

// NewSource returns a pseudo-random Source seeded deterministically.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// UpTo draws a uniformly distributed integer in [0, max], inclusive on both
// ends.
//
// # Bounds
//
// A negative max yields 0 without consuming a draw from src.
//
// Example:
//
//	damage := dice.UpTo(rng, 10) // 0..10
func UpTo(src Source, max int) int {
	if max < 0 {
		return 0
	}
	return src.Intn(max + 1)
}

// Sequence is a Source that replays fixed values in order, wrapping around
// when exhausted. Each value is reduced modulo n so it always lands in range.
type Sequence struct {
	values []int
	next   int
	draws  int
}

// NewSequence returns a Sequence over values. An empty Sequence always
// yields 0.
func NewSequence(values ...int) *Sequence {
	cloned := make([]int, len(values))
	copy(cloned, values)
	return &Sequence{values: cloned}
}

// Intn returns the next value reduced into [0, n).
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("dice: invalid argument to Intn")
	}
	s.draws++
	if len(s.values) == 0 {
		return 0
	}
	value := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return ((value % n) + n) % n
}

// Draws reports how many values have been drawn so far.
func (s *Sequence) Draws() int {
	return s.draws
}
