package qload

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Config for the hotspot key generator.
// Queries land in percentage-weighted sub-ranges of the key space: a
// bucket is chosen by cumulative probability, then a key is drawn
// uniformly inside it. Lets test authors hammer specific regions of
// the tree while keeping background traffic elsewhere.
type hotspotKeySpec struct {
	// Cardinality upper-bounds distinct keys that may be generated
	Cardinality uint64
	// TreeSize bounds the key space the buckets must fit in
	TreeSize int64
	// Buckets are the weighted class-intervals
	Buckets histogram
	// RandomSalt decorrelates generators sharing a seed stream
	RandomSalt uint64
}

func (g *hotspotKeySpec) validate() error {
	if len(g.Buckets) == 0 {
		return errors.New("hotspot workload has no buckets")
	}
	if g.Cardinality == 0 {
		return errors.New("cardinality must be positive")
	}
	return g.Buckets.validate(g.TreeSize)
}

type hotspotKeyGenerator struct {
	hotspotKeySpec
	rand *rand.Rand
}

func (g *hotspotKeyGenerator) Next(seed uint64) (int64, error) {
	reseed(g.rand, seed, g.RandomSalt, g.Cardinality)
	bucket, err := g.Buckets.selectBucket(g.rand)
	if err != nil {
		return 0, err
	}
	return uniformDraw(g.rand, bucket.Min, bucket.Max)
}

func newHotspotKeyGenerator(spec hotspotKeySpec) (keyGenerator, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &hotspotKeyGenerator{
		hotspotKeySpec: spec,
		rand:           rand.New(rand.NewSource(0)),
	}, nil
}
