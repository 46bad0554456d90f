package qload

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

func gaussianSpecForTree(treeSize int64) gaussianKeySpec {
	return gaussianKeySpec{
		Cardinality: math.MaxUint64,
		Mean:        float64(treeSize) / 2,
		StdDev:      float64(treeSize) / 4,
		Min:         1,
		Max:         treeSize,
	}
}

func (s *KeyGeneratorsTestSuite) TestGaussianKeysStayInRange() {
	gen, err := newGaussianKeyGenerator(gaussianSpecForTree(1000))
	s.Nil(err)

	keys := s.drawKeys(gen, 0, 100000)
	s.assertKeysInRange(keys, 1, 1000)
}

func (s *KeyGeneratorsTestSuite) TestGaussianMeanTracksTreeCenter() {
	gen, err := newGaussianKeyGenerator(gaussianSpecForTree(1000))
	s.Nil(err)

	keys := s.drawKeys(gen, 0, 100000)
	xs := make([]float64, len(keys))
	for i, k := range keys {
		xs[i] = float64(k)
	}
	s.InDelta(500, stat.Mean(xs, nil), 10)
}

func (s *KeyGeneratorsTestSuite) TestGaussianClustersAroundCenter() {
	gen, err := newGaussianKeyGenerator(gaussianSpecForTree(1000))
	s.Nil(err)

	center := 0
	numIterations := 100000
	for _, k := range s.drawKeys(gen, 0, numIterations) {
		if k >= 400 && k <= 600 {
			center++
		}
	}

	// A uniform draw would land ~20% of keys in the center fifth;
	// the bell (sd = 250) puts ~31% there.
	centerFraction := float64(center) / float64(numIterations)
	s.True(centerFraction > 0.28,
		"center fraction %v not denser than uniform", centerFraction)
}

func (s *KeyGeneratorsTestSuite) TestGaussianRisesAndFallsAroundCenter() {
	gen, err := newGaussianKeyGenerator(gaussianSpecForTree(1000))
	s.Nil(err)

	// class-interval width 100; five intervals on each side of the mean
	rise := make([]int, 5)
	fall := make([]int, 5)
	for _, k := range s.drawKeys(gen, 0, 100000) {
		itvl := (k - 1) / 100
		if itvl < 5 {
			rise[itvl]++
		} else {
			fall[itvl-5]++
		}
	}
	s.T().Logf("Rise frequencies: %#v", rise)
	s.T().Logf("Fall frequencies: %#v", fall)
	// The outermost intervals absorb the clamped tail mass, so the
	// monotonic rise/fall only holds strictly inside them.
	for i := 2; i < 5; i++ {
		s.True(rise[i-1] < rise[i])
	}
	for i := 1; i < 4; i++ {
		s.True(fall[i-1] > fall[i])
	}
}

func (s *KeyGeneratorsTestSuite) TestGaussianSingleKeyTree() {
	gen, err := newGaussianKeyGenerator(gaussianSpecForTree(1))
	s.Nil(err)

	for _, k := range s.drawKeys(gen, 4, 10000) {
		s.Equal(int64(1), k)
	}
}

func (s *KeyGeneratorsTestSuite) TestGaussianCardinalityControl() {
	spec := gaussianSpecForTree(100000)
	spec.Cardinality = 10
	gen, err := newGaussianKeyGenerator(spec)
	s.Nil(err)

	keys := s.drawKeys(gen, 0, 100000)
	s.Equal(10, countDistinct(keys))
}

func (s *KeyGeneratorsTestSuite) TestGaussianSeqWithSameSalt() {
	spec := gaussianSpecForTree(100000)
	spec.RandomSalt = 13
	gen1, err := newGaussianKeyGenerator(spec)
	s.Nil(err)
	gen2, err := newGaussianKeyGenerator(spec)
	s.Nil(err)

	keys1 := s.drawKeys(gen1, 4, 10000)
	keys2 := s.drawKeys(gen2, 4, 10000)
	s.Equal(keys1, keys2)
}

func (s *KeyGeneratorsTestSuite) TestGaussianRejectsNegativeStdDev() {
	spec := gaussianSpecForTree(100)
	spec.StdDev = -1
	_, err := newGaussianKeyGenerator(spec)
	s.NotNil(err)
}
