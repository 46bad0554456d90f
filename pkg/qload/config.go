package qload

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DistributionKind selects the probability model used to sample keys.
type DistributionKind uint8

const (
	// DistUniform samples keys uniformly over [1, treeSize], both
	// bounds inclusive.
	DistUniform DistributionKind = iota
	// DistGaussian samples from a normal distribution centered on the
	// middle of the key space (mean treeSize/2, sd treeSize/4), clamped
	// into [1, treeSize] and truncated to an integer.
	DistGaussian
	// DistHotspot samples from percentage-weighted key sub-ranges.
	// Only reachable through a workload file, which carries the buckets.
	DistHotspot
)

func (d DistributionKind) String() string {
	switch d {
	case DistUniform:
		return "uniform"
	case DistGaussian:
		return "gaussian"
	case DistHotspot:
		return "hotspot"
	}
	return "unknown"
}

// ParseDistributionKind recognizes both the single-letter CLI selectors
// and the spelled-out workload-file names.
func ParseDistributionKind(s string) (DistributionKind, error) {
	switch s {
	case "u", "uniform":
		return DistUniform, nil
	case "g", "gaussian", "normal":
		return DistGaussian, nil
	case "hotspot":
		return DistHotspot, nil
	}
	return DistUniform, errors.Errorf("unknown distribution kind %q", s)
}

// UnmarshalJSON is used to read a distribution selector from a workload file
func (d *DistributionKind) UnmarshalJSON(b []byte) error {
	if len(b) < 2 {
		return errors.Errorf("distribution value %s is too short to be valid", string(b))
	}
	kind, err := ParseDistributionKind(string(bytes.Trim(b, "\"")))
	if err != nil {
		return err
	}
	*d = kind
	return nil
}

// Config is the ad-hoc (non-workload-file) parameter set: one tree, one
// batch of queries, one distribution. Constructed once, never mutated.
type Config struct {
	TreeSize   int64
	QueryCount uint64
	Dist       DistributionKind
}

func parseTreeSize(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &ConfigError{Param: "n", Cause: err}
	}
	if n < 1 {
		return 0, configErrorf("n", "tree size %d is < 1", n)
	}
	return n, nil
}

func parseQueryCount(s string) (uint64, error) {
	q, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &ConfigError{Param: "q", Cause: err}
	}
	return q, nil
}

// ParseArgs builds a Config from positional arguments: n q [u|g].
// The selector defaults to uniform when absent. Every failure comes
// back as a ConfigError naming the offending parameter.
func ParseArgs(args []string) (*Config, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, configErrorf("args", "expected n q [u|g], got %d argument(s)", len(args))
	}

	n, err := parseTreeSize(args[0])
	if err != nil {
		return nil, err
	}
	q, err := parseQueryCount(args[1])
	if err != nil {
		return nil, err
	}

	dist := DistUniform
	if len(args) == 3 {
		dist, err = ParseDistributionKind(args[2])
		if err != nil {
			return nil, &ConfigError{Param: "distribution", Cause: err}
		}
		if dist == DistHotspot {
			return nil, configErrorf(
				"distribution", "hotspot workloads need bucket definitions; use a workload file")
		}
	}

	return &Config{TreeSize: n, QueryCount: q, Dist: dist}, nil
}

// ParseInput builds a Config from the two-line stdin form: tree size on
// the first line, query count on the second. This form has no
// distribution selector and is always uniform.
func ParseInput(r io.Reader) (*Config, error) {
	sc := bufio.NewScanner(r)

	readLine := func(param string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", &ConfigError{Param: param, Cause: err}
			}
			return "", configErrorf(param, "missing input line")
		}
		return strings.TrimSpace(sc.Text()), nil
	}

	nLine, err := readLine("n")
	if err != nil {
		return nil, err
	}
	n, err := parseTreeSize(nLine)
	if err != nil {
		return nil, err
	}

	qLine, err := readLine("q")
	if err != nil {
		return nil, err
	}
	q, err := parseQueryCount(qLine)
	if err != nil {
		return nil, err
	}

	return &Config{TreeSize: n, QueryCount: q, Dist: DistUniform}, nil
}
