package qload

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/tangosearch/qload/pkg/qload/randsrc"
	"github.com/tangosearch/qload/pkg/util/log"
)

// WorkLoad defines one batch of generated queries against one tree.
// Ad-hoc runs (the `gen` and `stdin` commands) build a single WorkLoad
// from a Config; the `run` command reads a JSON array of them.
type WorkLoad struct {
	Name         string           `json:"name"`
	TreeSize     int64            `json:"tree_size"`
	QueryCount   uint64           `json:"queries"`
	Distribution DistributionKind `json:"distribution"`
	// Cardinality upper-bounds distinct keys; 0 means unbounded
	Cardinality uint64 `json:"cardinality"`
	// RandomSalt decorrelates workloads sharing a seed
	RandomSalt uint64 `json:"random_salt"`
	// Interval paces emission; zero emits as fast as the sink allows
	Interval duration `json:"interval"`
	// Hotspots carries the bucket definitions for hotspot workloads
	Hotspots histogram `json:"hotspots"`

	rs <-chan uint64 // draw seed stream
}

func validationError(name string, fmtStr string, params ...interface{}) error {
	return fmt.Errorf(name+": "+fmtStr, params...)
}

func (w *WorkLoad) defaultFieldValues() {
	if w.Cardinality == 0 {
		w.Cardinality = math.MaxUint64
	}
}

func (w *WorkLoad) validate() error {
	if w.Name == "" {
		return fmt.Errorf("workload has no name")
	}
	if w.TreeSize < 1 {
		return validationError(w.Name, "tree size %d is < 1", w.TreeSize)
	}
	if w.rs == nil {
		return validationError(w.Name, "seed source not initialized")
	}
	if w.Interval.Duration < 0 {
		return validationError(w.Name, "interval %v is negative", w.Interval.Duration)
	}

	switch w.Distribution {
	case DistUniform, DistGaussian:
		if len(w.Hotspots) != 0 {
			return validationError(w.Name,
				"hotspot buckets are only valid with the hotspot distribution")
		}
	case DistHotspot:
		if len(w.Hotspots) == 0 {
			return validationError(w.Name, "hotspot workload has no buckets")
		}
		if err := w.Hotspots.validate(w.TreeSize); err != nil {
			return validationError(w.Name, "%s", err.Error())
		}
	default:
		return validationError(w.Name, "unsupported distribution kind %d", w.Distribution)
	}

	return nil
}

// newKeyGenerator binds the workload's distribution to its key space
// [1, TreeSize]. Gaussian parameters are derived, not configurable:
// mean TreeSize/2, standard deviation TreeSize/4.
func (w *WorkLoad) newKeyGenerator() (keyGenerator, error) {
	switch w.Distribution {
	case DistUniform:
		return newUniformKeyGenerator(uniformKeySpec{
			Cardinality: w.Cardinality,
			Min:         1,
			Max:         w.TreeSize,
			RandomSalt:  w.RandomSalt,
		})
	case DistGaussian:
		return newGaussianKeyGenerator(gaussianKeySpec{
			Cardinality: w.Cardinality,
			Mean:        float64(w.TreeSize) / 2,
			StdDev:      float64(w.TreeSize) / 4,
			Min:         1,
			Max:         w.TreeSize,
			RandomSalt:  w.RandomSalt,
		})
	case DistHotspot:
		return newHotspotKeyGenerator(hotspotKeySpec{
			Cardinality: w.Cardinality,
			TreeSize:    w.TreeSize,
			Buckets:     w.Hotspots,
			RandomSalt:  w.RandomSalt,
		})
	}
	return nil, validationError(w.Name, "unsupported distribution kind %d", w.Distribution)
}

func newSeedStream(o *emitOptions) <-chan uint64 {
	cycle := o.cycle
	if cycle == 0 {
		cycle = math.MaxUint64
	}
	return randsrc.New(
		randsrc.Seed(o.seed),
		randsrc.CycleLen(cycle),
		randsrc.Repeat(o.repeat),
	)
}

// newAdHocWorkLoad wraps a Config into a single unnamed-file workload.
func newAdHocWorkLoad(c *Config, o *emitOptions) *WorkLoad {
	w := &WorkLoad{
		Name:         "adhoc",
		TreeSize:     c.TreeSize,
		QueryCount:   c.QueryCount,
		Distribution: c.Dist,
	}
	w.defaultFieldValues()
	w.rs = newSeedStream(o)
	return w
}

// ParseWorkLoads parses and validates a JSON workload file. Each
// workload gets its own seed stream; all streams share the run seed, so
// workloads that must diverge should carry distinct random_salt values.
func ParseWorkLoads(
	ctx context.Context,
	rawData []byte,
	o *emitOptions,
) ([]*WorkLoad, error) {
	ctx = log.WithLogTag(ctx, "workload_parsing", nil)
	var works []*WorkLoad
	if err := json.Unmarshal(rawData, &works); err != nil {
		return nil, err
	}

	knownNames := make(map[string]bool)
	for workIdx, w := range works {
		if knownNames[w.Name] && w.Name != "" {
			return nil, fmt.Errorf("name '%s' used in workload '%d'"+
				" conflicts with another workload before it", w.Name, workIdx+1)
		}
		knownNames[w.Name] = true

		w.defaultFieldValues()
		w.rs = newSeedStream(o)
		if err := w.validate(); err != nil {
			return nil, err
		}
		if log.V(2) {
			log.Infof(ctx, "Parsed workload '%s': tree_size=%d queries=%d dist=%s",
				w.Name, w.TreeSize, w.QueryCount, w.Distribution)
		}
	}

	return works, nil
}
