// Package random provides seed generation for the pseudo-random sources that
// drive enemy damage and movement rolls.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSeededRNG returns a generator for seed. A zero seed draws a fresh one
// from crypto/rand; the seed actually used is returned for reproducibility.
func NewSeededRNG(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		fresh, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = fresh
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
