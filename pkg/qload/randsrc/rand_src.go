// Package randsrc streams draw seeds for query generation. Every query
// in a workload consumes one seed, so the key sequence is a pure
// function of the source seed regardless of who drains the channel.
package randsrc

import (
	"math"
	"math/rand"
)

const (
	// Buffered capacity of the seed channel
	defaultChanSize = 100
)

// Source configures a stream of uint64 draw seeds.
type Source struct {
	// chanSize: buffer size of the seed channel
	chanSize int
	// seed: seed of the underlying PRNG
	seed int64
	// cycleLen: number of draw seeds in one cycle of the stream
	cycleLen uint64
	// repeat: whether the stream restarts an identical cycle after
	// cycleLen seeds. If repeat is false the stream closes instead,
	// which caps the total number of queries a workload can emit.
	repeat bool
}

func (s *Source) produce(c chan<- uint64) {
	drawn := uint64(0)
	r := rand.New(rand.NewSource(s.seed))
	for {
		c <- r.Uint64()
		drawn++
		if drawn >= s.cycleLen {
			if !s.repeat {
				close(c)
				return
			}
			// Replay: same seed gives the same cycle again
			drawn = 0
			r.Seed(s.seed)
		}
	}
}

// Seed sets the seed of the stream's PRNG.
func Seed(seed int64) func(*Source) {
	return func(s *Source) {
		s.seed = seed
	}
}

// ChanSize sets the buffer size of the seed channel.
func ChanSize(size int) func(*Source) {
	return func(s *Source) {
		s.chanSize = size
	}
}

// CycleLen caps the number of seeds produced in one cycle. Without this
// option the stream is effectively unbounded.
func CycleLen(n uint64) func(*Source) {
	return func(s *Source) {
		s.cycleLen = n
	}
}

// Repeat makes the stream replay identical cycles instead of closing
// after CycleLen seeds.
func Repeat(repeat bool) func(*Source) {
	return func(s *Source) {
		s.repeat = repeat
	}
}

// New returns a channel of draw seeds configured by the given options.
func New(options ...func(*Source)) <-chan uint64 {
	s := &Source{
		chanSize: defaultChanSize,
		cycleLen: math.MaxUint64,
	}
	for _, o := range options {
		o(s)
	}
	c := make(chan uint64, s.chanSize)
	go s.produce(c)
	return c
}
