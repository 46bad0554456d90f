package qload

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/tangosearch/qload/pkg/util/numberutil"
)

// Config for the gaussian key generator.
// Samples are drawn from a normal distribution, clamped into [Min, Max]
// and then truncated (not rounded) to an integer key. For a tree of
// size n the derived parameters are Mean = n/2 and StdDev = n/4, which
// concentrates queries on tree-center keys.
type gaussianKeySpec struct {
	// Cardinality upper-bounds distinct keys that may be generated
	Cardinality uint64
	// Mean is the peak (center) of the bell
	Mean float64
	// StdDev is the standard deviation of the distribution
	// (higher value implies a wider bell)
	StdDev float64
	// Min key that can be generated (clamp floor)
	Min int64
	// Max key that can be generated (clamp ceiling)
	Max int64
	// RandomSalt decorrelates generators sharing a seed stream
	RandomSalt uint64
}

func (g *gaussianKeySpec) validate() error {
	if g.Min > g.Max {
		return errors.Errorf("min %v is > max %v", g.Min, g.Max)
	}
	if g.StdDev < 0 {
		return errors.Errorf("standard deviation %v is negative", g.StdDev)
	}
	if g.Cardinality == 0 {
		return errors.New("cardinality must be positive")
	}
	return nil
}

type gaussianKeyGenerator struct {
	gaussianKeySpec
	rand *rand.Rand
}

func (g *gaussianKeyGenerator) Next(seed uint64) (int64, error) {
	reseed(g.rand, seed, g.RandomSalt, g.Cardinality)
	v := g.rand.NormFloat64()*g.StdDev + g.Mean
	return int64(numberutil.ClampFloat64(v, float64(g.Min), float64(g.Max))), nil
}

func newGaussianKeyGenerator(spec gaussianKeySpec) (keyGenerator, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &gaussianKeyGenerator{
		gaussianKeySpec: spec,
		rand:            rand.New(rand.NewSource(0)),
	}, nil
}
