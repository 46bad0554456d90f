package qload

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
	graphite "github.com/cyberdelia/go-metrics-graphite"
	stats "github.com/rcrowley/go-metrics"

	"github.com/tangosearch/qload/pkg/util/log"
)

// StatsRecorder observes the keys a run emits, per workload. Recorders
// write summaries to the log only; stdout belongs to the query stream.
type StatsRecorder interface {
	// RecordKey observes one emitted key for the named workload
	RecordKey(id string, key int64)
	// Flush persists/publishes whatever the recorder buffered
	Flush()
	// Summary returns a human-readable digest of the run
	Summary() string
}

type noOpStatsRecorder struct{}

// NewNoOpStatsRecorder returns a recorder that discards everything.
func NewNoOpStatsRecorder() StatsRecorder {
	return &noOpStatsRecorder{}
}

func (r *noOpStatsRecorder) RecordKey(id string, key int64) {}
func (r *noOpStatsRecorder) Flush()                         {}
func (r *noOpStatsRecorder) Summary() string                { return "" }

// histoStatsRecorder keeps an HDR histogram of emitted keys per
// workload, so a run can report how the generated keys actually spread
// over the key space.
type histoStatsRecorder struct {
	maxKey int64
	hists  map[string]*hdrhistogram.Histogram
	mut    sync.Mutex
}

// NewHistoStatsRecorder returns a recorder tracking key distribution
// over [1, maxKey].
func NewHistoStatsRecorder(maxKey int64) StatsRecorder {
	if maxKey < 2 {
		// hdrhistogram needs a non-degenerate trackable range
		maxKey = 2
	}
	return &histoStatsRecorder{
		maxKey: maxKey,
		hists:  make(map[string]*hdrhistogram.Histogram),
	}
}

func (r *histoStatsRecorder) RecordKey(id string, key int64) {
	r.mut.Lock()
	defer r.mut.Unlock()
	h, ok := r.hists[id]
	if !ok {
		h = hdrhistogram.New(1, r.maxKey, 3)
		r.hists[id] = h
	}
	if err := h.RecordValue(key); err != nil {
		log.Warningf(context.Background(),
			"Couldn't record key %d for '%s': %v", key, id, err)
	}
}

func (r *histoStatsRecorder) Flush() {}

func (r *histoStatsRecorder) Summary() string {
	r.mut.Lock()
	defer r.mut.Unlock()

	var ids []string
	for id := range r.hists {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b bytes.Buffer
	b.WriteString("Key distribution summary:\n")
	for _, id := range ids {
		h := r.hists[id]
		b.WriteString(fmt.Sprintf(
			"%s: count=%d min=%d max=%d mean=%.1f p50=%d p99=%d\n",
			id, h.TotalCount(), h.Min(), h.Max(), h.Mean(),
			h.ValueAtQuantile(50), h.ValueAtQuantile(99),
		))
	}
	return b.String()
}

// graphiteStatsRecorder publishes per-workload query counters and key
// histograms to a graphite endpoint on a flush ticker.
type graphiteStatsRecorder struct {
	reg    stats.Registry
	cfg    graphite.Config
	tickCh <-chan time.Time
}

// NewGraphiteStatsRecorder creates a recorder that pushes to graphite
// under the prefix "qload.<senderID>".
func NewGraphiteStatsRecorder(
	hostPort string,
	flushInterval time.Duration,
	senderID string,
) (StatsRecorder, error) {
	return newGraphiteStatsRecorderWithExternalTicker(
		hostPort,
		flushInterval,
		senderID,
		time.Tick(flushInterval))
}

func newGraphiteStatsRecorderWithExternalTicker(
	hostPort string,
	flushInterval time.Duration,
	senderID string,
	tickCh <-chan time.Time,
) (StatsRecorder, error) {
	addr, err := net.ResolveTCPAddr("tcp", hostPort)
	if err != nil {
		return nil, err
	}
	var r graphiteStatsRecorder
	r.reg = stats.NewRegistry()
	r.cfg.Prefix = fmt.Sprintf("qload.%s", senderID)
	r.cfg.Addr = addr
	r.cfg.Registry = r.reg
	r.cfg.DurationUnit = time.Nanosecond
	r.cfg.FlushInterval = flushInterval
	r.cfg.Percentiles = []float64{0.5, 0.75, 0.9, 0.95, 0.98, 0.99, 0.999}
	r.tickCh = tickCh
	go relayToGraphite(&r)
	return &r, nil
}

func relayToGraphite(r *graphiteStatsRecorder) {
	for range r.tickCh {
		r.push()
	}
}

func (r *graphiteStatsRecorder) push() {
	if err := graphite.Once(r.cfg); err != nil {
		log.Errorf(
			context.Background(),
			"Couldn't push stats to graphite, error: %s",
			err,
		)
	}
}

func (r *graphiteStatsRecorder) RecordKey(id string, key int64) {
	stats.GetOrRegisterCounter(id+".queries", r.reg).Inc(1)
	stats.GetOrRegisterHistogram(
		id+".keys", r.reg, stats.NewUniformSample(1028),
	).Update(key)
}

func (r *graphiteStatsRecorder) Flush() {
	r.push()
}

func (r *graphiteStatsRecorder) Summary() string {
	var b bytes.Buffer
	b.WriteString("Stats summary:\n")

	r.reg.Each(func(name string, s interface{}) {
		switch s := s.(type) {
		case stats.Counter:
			b.WriteString(fmt.Sprintf("%s: %d\n", name, s.Count()))
		case stats.Histogram:
			b.WriteString(fmt.Sprintf(
				"%s: mean=%.1f p99=%.0f\n",
				name, s.Mean(), s.Percentile(0.99),
			))
		}
	})

	return b.String()
}
