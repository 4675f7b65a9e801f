// Package uniq generates sequences of distinct ints, for driving tests with keys that never repeat.
package uniq

import (
	"iter"

	"github.com/taylorza/go-lfsr"
)

// Ints yields distinct ints in the range (0,2^31), in an order fixed by seed.
// A zero seed is replaced with one, as the LFSR would never leave zero.
func Ints(seed uint32) iter.Seq[int] {
	if seed == 0 {
		seed = 1
	}

	return func(yield func(int) bool) {
		gen := lfsr.NewLfsr32(seed)
		for {
			id, restarted := gen.Next()
			if restarted {
				return // generated ~32 bits of IDs
			}

			if id == 0 || id&0x80000000 == 0x80000000 {
				continue // don't allow zero or anything with top bit
			}

			if !yield(int(id)) {
				return
			}
		}
	}
}

// Take returns the first count values from Ints(seed).
func Take(seed uint32, count int) []int {
	out := make([]int, 0, count)
	if count <= 0 {
		return out
	}
	for id := range Ints(seed) {
		out = append(out, id)
		if len(out) == count {
			break
		}
	}
	return out
}
