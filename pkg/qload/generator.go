package qload

import (
	"math/rand"

	"github.com/tangosearch/qload/pkg/util/numberutil"
)

// keyGenerator produces one search key per draw seed. Draws are
// independent: each call reseeds the generator's private PRNG from the
// workload-level seed, salted so that generators sharing a seed stream
// do not move in lockstep.
type keyGenerator interface {
	Next(seed uint64) (int64, error)
}

// reseed primes r for one draw. Cardinality upper-bounds the number of
// distinct PRNG states, which in turn caps the number of distinct keys
// a workload can touch (a working-set-size control for tree tests).
func reseed(r *rand.Rand, seed, salt, cardinality uint64) {
	r.Seed(int64((seed + salt) % cardinality))
}

// uniformDraw returns a key uniformly distributed over [min, max],
// both bounds inclusive.
func uniformDraw(r *rand.Rand, min, max int64) (int64, error) {
	span := numberutil.Diff(min, max) + 1
	u := r.Uint64()
	if span != 0 {
		// span == 0 means the full int64 range; any uint64 maps onto it
		u %= span
	}
	return numberutil.AddInt64UInt64(min, u)
}
