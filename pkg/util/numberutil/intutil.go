// Package numberutil holds integer and float helpers for key-range
// arithmetic that must stay correct over the whole int64 domain.
package numberutil

import (
	"errors"
	"math"
)

// ErrIntOverflow is returned when a sum does not fit in an int64.
var ErrIntOverflow = errors.New("integer overflow")

// Diff returns ul - ll as a uint64. ll must not exceed ul.
func Diff(ll, ul int64) uint64 {
	if (ll >= 0) == (ul >= 0) {
		return uint64(ul - ll)
	}
	// Signs differ, so ll < 0 <= ul. -(ll+1) avoids negating MinInt64.
	return uint64(ul) + uint64(-(ll + 1)) + 1
}

// AddInt64UInt64 adds a uint64 offset to an int64 base and reports
// ErrIntOverflow when the result does not fit in an int64.
func AddInt64UInt64(i int64, u uint64) (int64, error) {
	// Fold u below MaxInt64; runs twice only for u near MaxUint64.
	for u > uint64(math.MaxInt64) {
		if i > 0 {
			return 0, ErrIntOverflow
		}
		i += math.MaxInt64
		u -= math.MaxInt64
	}

	t := int64(u)
	if i > math.MaxInt64-t {
		return 0, ErrIntOverflow
	}
	return i + t, nil
}

// ClampFloat64 limits v to the closed range [lo, hi].
func ClampFloat64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
