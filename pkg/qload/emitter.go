package qload

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/tangosearch/qload/pkg/util/log"
)

// searchOpCode prefixes every query line. The Tango Tree consumer
// multiplexes operation types on this leading opcode; search is the
// only operation this generator emits.
const searchOpCode = 1

// Emit writes the workload to out: one header line carrying the tree
// size, then exactly QueryCount lines "1 <key>" in generation order.
// Keys are generated one at a time and discarded after writing.
func Emit(ctx context.Context, w *WorkLoad, out io.Writer, rec StatsRecorder) error {
	gen, err := w.newKeyGenerator()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(bw, "%d\n", w.TreeSize); err != nil {
		return errors.Wrapf(err, "%s: writing header", w.Name)
	}

	var pace <-chan time.Time
	if w.Interval.Duration > 0 {
		ticker := time.NewTicker(w.Interval.Duration)
		defer ticker.Stop()
		pace = ticker.C
	}

	for i := uint64(0); i < w.QueryCount; i++ {
		seed, ok := <-w.rs
		if !ok {
			return errors.Errorf(
				"%s: seed stream closed after %d of %d queries", w.Name, i, w.QueryCount)
		}
		if log.V(9) {
			log.Infof(ctx, "Got draw seed: %d", seed)
		}

		key, err := gen.Next(seed)
		if err != nil {
			return errors.Wrapf(err, "%s: generating query %d", w.Name, i)
		}
		if _, err := fmt.Fprintf(bw, "%d %d\n", searchOpCode, key); err != nil {
			return errors.Wrapf(err, "%s: writing query %d", w.Name, i)
		}
		rec.RecordKey(w.Name, key)

		if pace != nil {
			select {
			case <-pace:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return errors.Wrapf(bw.Flush(), "%s: flushing output", w.Name)
}
