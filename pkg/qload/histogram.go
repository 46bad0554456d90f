package qload

import (
	"math/rand"

	"github.com/pkg/errors"
)

// keyInterval is one hotspot bucket: a sub-range of the key space and
// the percentage of queries that should land in it.
type keyInterval struct {
	Min        int64   `json:"min"`
	Max        int64   `json:"max"`
	Percentage float32 `json:"pct"`
}

type histogram []keyInterval

// validate checks the buckets against the key space [1, treeSize]:
// ordered bounds, in-range, and percentages summing to ~100.
func (h histogram) validate(treeSize int64) error {
	pctSum := float32(0.0)
	for _, itvl := range h {
		pctSum += itvl.Percentage
		if itvl.Min > itvl.Max {
			return errors.Errorf("min %v is greater than max %v", itvl.Min, itvl.Max)
		}
		if itvl.Min < 1 || itvl.Max > treeSize {
			return errors.Errorf(
				"bucket [%v, %v] is outside the key space [1, %v]",
				itvl.Min, itvl.Max, treeSize)
		}
	}

	return validatePctSum("hotspots", pctSum)
}

// selectBucket draws a bucket with probability proportional to its
// percentage.
func (h histogram) selectBucket(r *rand.Rand) (*keyInterval, error) {
	toss := r.Float32() * 100
	cumulative := float32(0)
	for i := range h {
		cumulative += h[i].Percentage
		if toss < cumulative {
			return &h[i], nil
		}
	}

	return nil, errors.New("unable to select bucket in histogram")
}

func validatePctSum(name string, sum float32) error {
	if (sum < 99.9) || (sum > 100.1) {
		return &pctSumError{sum, name}
	}
	return nil
}
