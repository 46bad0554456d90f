package qload

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Config for the uniform key generator.
// Keys are drawn uniformly between Min and Max. Both bounds are
// inclusive: for a tree of size n every key in [1, n] is reachable,
// including n itself.
type uniformKeySpec struct {
	// Cardinality upper-bounds distinct keys that may be generated
	Cardinality uint64
	// Min key that can be generated (inclusive)
	Min int64
	// Max key that can be generated (inclusive)
	Max int64
	// RandomSalt decorrelates generators sharing a seed stream
	RandomSalt uint64
}

func (g *uniformKeySpec) validate() error {
	if g.Min > g.Max {
		return errors.Errorf("min %v is > max %v", g.Min, g.Max)
	}
	if g.Cardinality == 0 {
		return errors.New("cardinality must be positive")
	}
	return nil
}

type uniformKeyGenerator struct {
	uniformKeySpec
	rand *rand.Rand
}

func (g *uniformKeyGenerator) Next(seed uint64) (int64, error) {
	reseed(g.rand, seed, g.RandomSalt, g.Cardinality)
	return uniformDraw(g.rand, g.Min, g.Max)
}

func newUniformKeyGenerator(spec uniformKeySpec) (keyGenerator, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &uniformKeyGenerator{
		uniformKeySpec: spec,
		rand:           rand.New(rand.NewSource(0)),
	}, nil
}
