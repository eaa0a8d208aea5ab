package pet

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source used for action rewards.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG source. A zero seed seeds from the wall clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between draws uniformly from [lo, hi].
func between(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
