package qload

import (
	"math"
)

func (s *KeyGeneratorsTestSuite) TestUniformKeysStayInRange() {
	gen, err := newUniformKeyGenerator(uniformKeySpec{
		Cardinality: math.MaxUint64,
		Min:         1,
		Max:         1000,
	})
	s.Nil(err)

	keys := s.drawKeys(gen, 0, 100000)
	s.assertKeysInRange(keys, 1, 1000)
}

func (s *KeyGeneratorsTestSuite) TestUniformUpperBoundIsReachable() {
	// Both bounds are inclusive: a tree of size 2 must see key 2.
	gen, err := newUniformKeyGenerator(uniformKeySpec{
		Cardinality: math.MaxUint64,
		Min:         1,
		Max:         2,
	})
	s.Nil(err)

	counts := make(map[int64]int)
	for _, k := range s.drawKeys(gen, 0, 10000) {
		counts[k]++
	}
	s.Equal(2, len(counts))
	s.InDelta(5000, counts[1], 500)
	s.InDelta(5000, counts[2], 500)
}

func (s *KeyGeneratorsTestSuite) TestUniformSingleKeyTree() {
	gen, err := newUniformKeyGenerator(uniformKeySpec{
		Cardinality: math.MaxUint64,
		Min:         1,
		Max:         1,
	})
	s.Nil(err)

	for _, k := range s.drawKeys(gen, 4, 10000) {
		s.Equal(int64(1), k)
	}
}

func (s *KeyGeneratorsTestSuite) TestUniformDataDistribution() {
	gen, err := newUniformKeyGenerator(uniformKeySpec{
		// Higher cardinality leads to a more uniform distribution
		Cardinality: math.MaxUint64,
		Min:         1,
		Max:         1000,
	})
	s.Nil(err)

	numIterations := 100000
	numBuckets := 10
	buckets := make([]int, numBuckets)
	for _, k := range s.drawKeys(gen, 0, numIterations) {
		buckets[(k-1)/100]++
	}

	expectedPerBucket := float64(numIterations) / float64(numBuckets)
	s.T().Logf("Bucket frequencies: %#v", buckets)
	for bucketNum, freq := range buckets {
		s.InDelta(expectedPerBucket, freq, 0.1*expectedPerBucket,
			"Bucket %v has %v elements. Expected %v",
			bucketNum, freq, expectedPerBucket)
	}
}

func (s *KeyGeneratorsTestSuite) TestUniformCardinalityControl() {
	gen, err := newUniformKeyGenerator(uniformKeySpec{
		Cardinality: 10,
		Min:         1,
		Max:         100000,
	})
	s.Nil(err)

	keys := s.drawKeys(gen, 4, 100000)
	s.Equal(10, countDistinct(keys))
}

func (s *KeyGeneratorsTestSuite) TestUniformSeqWithSameSalt() {
	spec := uniformKeySpec{
		Cardinality: math.MaxUint64,
		Min:         1,
		Max:         100000,
		RandomSalt:  13,
	}
	gen1, err := newUniformKeyGenerator(spec)
	s.Nil(err)
	gen2, err := newUniformKeyGenerator(spec)
	s.Nil(err)

	keys1 := s.drawKeys(gen1, 4, 10000)
	keys2 := s.drawKeys(gen2, 4, 10000)
	s.Equal(keys1, keys2)
}

func (s *KeyGeneratorsTestSuite) TestUniformSeqWithDifferentSalt() {
	gen1, err := newUniformKeyGenerator(uniformKeySpec{
		Cardinality: math.MaxUint64,
		Min:         1,
		Max:         100000000,
		RandomSalt:  13,
	})
	s.Nil(err)
	gen2, err := newUniformKeyGenerator(uniformKeySpec{
		Cardinality: math.MaxUint64,
		Min:         1,
		Max:         100000000,
		RandomSalt:  42,
	})
	s.Nil(err)

	// they must evolve differently even on the same seed stream
	keys1 := s.drawKeys(gen1, 3, 10000)
	keys2 := s.drawKeys(gen2, 3, 10000)
	diffCount := 0
	for i := range keys1 {
		if keys1[i] != keys2[i] {
			diffCount++
		}
	}
	s.InDelta(10000, diffCount, 100)
}

func (s *KeyGeneratorsTestSuite) TestUniformRejectsInvertedBounds() {
	_, err := newUniformKeyGenerator(uniformKeySpec{
		Cardinality: math.MaxUint64,
		Min:         10,
		Max:         9,
	})
	s.NotNil(err)
	s.Equal("min 10 is > max 9", err.Error())
}
